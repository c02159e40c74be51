package appstate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gstbooks-api/internal/application/appstate"
	"github.com/jhoicas/gstbooks-api/pkg/config"
)

func cfgWith(gstin, state, threshold string) *config.Config {
	return &config.Config{
		Business:  config.BusinessConfig{Name: "Acme Traders", GSTIN: gstin, StateCode: state},
		Dashboard: config.DashboardConfig{Source: config.DashboardSourcePostgres, ReorderThreshold: threshold},
	}
}

func TestNew_EstadoDerivadoDelGSTIN(t *testing.T) {
	st, err := appstate.New(cfgWith("27AAPFU0939F1ZV", "", "15"))
	require.NoError(t, err)

	assert.Equal(t, "27", st.Business.StateCode)
	assert.Equal(t, "15", st.ReorderThreshold.String())
	assert.False(t, st.IsInterState("27"))
	assert.True(t, st.IsInterState("29"))
	assert.False(t, st.IsInterState(""), "tercero sin estado se trata como intraestatal")
}

func TestNew_GSTINInvalido(t *testing.T) {
	_, err := appstate.New(cfgWith("29ABCDE1234F1Z5", "", ""))
	assert.Error(t, err)
}

func TestNew_UmbralInvalido(t *testing.T) {
	_, err := appstate.New(cfgWith("", "", "-1"))
	assert.Error(t, err)

	_, err = appstate.New(cfgWith("", "", "diez"))
	assert.Error(t, err)
}

func TestNew_UmbralPorDefecto(t *testing.T) {
	st, err := appstate.New(cfgWith("", "", ""))
	require.NoError(t, err)
	assert.Equal(t, "10", st.ReorderThreshold.String())
}

func TestNew_UmbralCeroSeConserva(t *testing.T) {
	st, err := appstate.New(cfgWith("", "", "0"))
	require.NoError(t, err)
	assert.True(t, st.ReorderThreshold.IsZero())
}

func TestPage(t *testing.T) {
	st, err := appstate.New(cfgWith("", "", ""))
	require.NoError(t, err)

	l, o := st.Page(0, -5)
	assert.Equal(t, appstate.DefaultPageLimit, l)
	assert.Equal(t, 0, o)

	l, _ = st.Page(500, 0)
	assert.Equal(t, appstate.MaxPageLimit, l)
}
