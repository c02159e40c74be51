package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gstbooks-api/internal/application/billing"
	"github.com/jhoicas/gstbooks-api/internal/application/dto"
	"github.com/jhoicas/gstbooks-api/internal/domain"
	"github.com/jhoicas/gstbooks-api/internal/domain/entity"
	"github.com/jhoicas/gstbooks-api/pkg/logger"
)

const invoiceID = "9c4f5d67-4e5f-4081-9c23-3d4e5f607182"

func (f *fixture) paymentUseCase() *billing.PaymentUseCase {
	return billing.NewPaymentUseCase(f.tx, f.payments, f.state, nil, logger.Nop())
}

func (f *fixture) seedInvoice(status string) {
	_ = f.invoices.Create(context.Background(), &entity.Invoice{
		ID:          invoiceID,
		Number:      "INV-000001",
		InvoiceType: entity.InvoiceTypeSale,
		Status:      status,
		PartyID:     customerID,
		Date:        time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		TotalAmount: dec("1180"),
		PaidAmount:  dec("0"),
	})
}

func pay(amount string) dto.RecordPaymentRequest {
	return dto.RecordPaymentRequest{InvoiceID: invoiceID, Amount: dec(amount), Mode: entity.PaymentModeUPI}
}

func TestRecord_ParcialLuegoTotal(t *testing.T) {
	f := newFixture()
	f.seedInvoice(entity.InvoiceStatusPending)
	uc := f.paymentUseCase()
	ctx := context.Background()

	first, err := uc.Record(ctx, pay("500"))
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPartial, first.InvoiceStatus)
	require.NotNil(t, first.InvoiceOutstanding)
	assert.True(t, assertDec("680", *first.InvoiceOutstanding))
	assert.Equal(t, customerID, first.PartyID)

	second, err := uc.Record(ctx, pay("680"))
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, second.InvoiceStatus)
	assert.True(t, second.InvoiceOutstanding.IsZero())

	inv := f.invoices.invoices[invoiceID]
	assert.True(t, assertDec("1180", inv.PaidAmount))
	assert.Equal(t, entity.InvoiceStatusPaid, inv.Status)

	_, err = uc.Record(ctx, pay("1"))
	assert.ErrorIs(t, err, domain.ErrInvoiceClosed)

	list, err := uc.List(ctx, invoiceID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestRecord_SobrepagoNoModificaNada(t *testing.T) {
	f := newFixture()
	f.seedInvoice(entity.InvoiceStatusPending)

	_, err := f.paymentUseCase().Record(context.Background(), pay("1180.01"))
	assert.ErrorIs(t, err, domain.ErrOverpayment)
	assert.Empty(t, f.payments.payments)
	assert.True(t, f.invoices.invoices[invoiceID].PaidAmount.IsZero())
}

func TestRecord_MontoInvalido(t *testing.T) {
	f := newFixture()
	f.seedInvoice(entity.InvoiceStatusPending)
	uc := f.paymentUseCase()

	for _, amount := range []string{"0", "-10", "10.005"} {
		_, err := uc.Record(context.Background(), pay(amount))
		assert.ErrorIs(t, err, domain.ErrInvalidInput, amount)
	}
	assert.Zero(t, f.tx.calls)
}

func TestRecord_FacturaInexistenteOAnulada(t *testing.T) {
	f := newFixture()
	uc := f.paymentUseCase()

	_, err := uc.Record(context.Background(), pay("10"))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	f.seedInvoice(entity.InvoiceStatusCancelled)
	_, err = uc.Record(context.Background(), pay("10"))
	assert.ErrorIs(t, err, domain.ErrInvoiceClosed)
}

func TestRecord_FechaDePago(t *testing.T) {
	f := newFixture()
	f.seedInvoice(entity.InvoiceStatusPending)
	uc := f.paymentUseCase()

	req := pay("100")
	req.PaidAt = "2024-04-05"
	out, err := uc.Record(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "2024-04-05", out.PaidAt)

	req.PaidAt = "05-04-2024"
	_, err = uc.Record(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
