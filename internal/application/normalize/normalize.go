// Package normalize convierte el JSON crudo de los servicios (map[string]any) en
// entidades tipadas. Acepta claves en snake_case y camelCase y números como JSON
// number o string. Un campo numérico ausente o mal formado vale cero y un
// discriminador ausente queda como cadena vacía: nunca devuelve error.
package normalize

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"github.com/jhoicas/gstbooks-api/internal/domain/dashboard"
	"github.com/jhoicas/gstbooks-api/internal/domain/entity"
	"github.com/jhoicas/gstbooks-api/internal/domain/gst"
	"github.com/jhoicas/gstbooks-api/pkg/gstin"
)

// Alias aceptados por campo, en orden de prioridad.
var (
	keyID       = []string{"id", "_id", "uuid"}
	keyNumber   = []string{"number", "invoiceNumber", "invoice_number", "invoiceNo", "invoice_no"}
	keyInvType  = []string{"invoiceType", "invoice_type", "type"}
	keyStatus   = []string{"status", "paymentStatus", "payment_status"}
	keyPartyID  = []string{"partyId", "party_id", "customerId", "customer_id", "supplierId", "supplier_id"}
	keyDate     = []string{"date", "invoiceDate", "invoice_date", "createdAt", "created_at"}
	keyDueDate  = []string{"dueDate", "due_date"}
	keyInter    = []string{"isInterState", "is_inter_state", "interState", "inter_state"}
	keySubtotal = []string{"subtotal", "subTotal", "sub_total"}
	keyTotDisc  = []string{"totalDiscount", "total_discount"}
	keyTaxable  = []string{"taxableAmount", "taxable_amount", "taxable"}
	keyCGST     = []string{"cgst", "cgstAmount", "cgst_amount"}
	keySGST     = []string{"sgst", "sgstAmount", "sgst_amount"}
	keyIGST     = []string{"igst", "igstAmount", "igst_amount"}
	keyTotal    = []string{"totalAmount", "total_amount", "grandTotal", "grand_total", "total"}
	keyPaid     = []string{"paidAmount", "paid_amount", "amountPaid", "amount_paid"}
	keyNotes    = []string{"notes", "note", "remarks"}

	keyInvoiceID = []string{"invoiceId", "invoice_id"}
	keyAmount    = []string{"amount", "paymentAmount", "payment_amount"}
	keyMode      = []string{"mode", "paymentMode", "payment_mode", "method"}
	keyReference = []string{"reference", "referenceNo", "reference_no", "ref"}
	keyPaidAt    = []string{"paidAt", "paid_at", "paymentDate", "payment_date", "date"}

	keySKU       = []string{"sku", "code", "itemCode", "item_code"}
	keyName      = []string{"name", "itemName", "item_name", "partyName", "party_name"}
	keyHSN       = []string{"hsnCode", "hsn_code", "hsn", "sacCode", "sac_code"}
	keyUnit      = []string{"unit", "uom"}
	keySale      = []string{"salePrice", "sale_price", "sellingPrice", "selling_price", "price"}
	keyPurchase  = []string{"purchasePrice", "purchase_price", "costPrice", "cost_price"}
	keyTaxRate   = []string{"taxRatePercent", "tax_rate_percent", "taxRate", "tax_rate", "gstRate", "gst_rate"}
	keyStock     = []string{"currentStock", "current_stock", "stock", "quantity", "qty"}
	keyThreshold = []string{"reorderThreshold", "reorder_threshold", "reorderLevel", "reorder_level", "lowStockThreshold", "low_stock_threshold"}

	keyPartyType = []string{"type", "partyType", "party_type"}
	keyGSTIN     = []string{"gstin", "gstNumber", "gst_number", "gstNo", "gst_no"}
	keyStateCode = []string{"stateCode", "state_code"}
	keyEmail     = []string{"email"}
	keyPhone     = []string{"phone", "mobile"}
	keyAddress   = []string{"address", "billingAddress", "billing_address"}

	keyDescription = []string{"description", "name", "itemName", "item_name"}
	keyQuantity    = []string{"quantity", "qty"}
	keyUnitPrice   = []string{"unitPrice", "unit_price", "rate", "price"}
	keyDiscPct     = []string{"discountPercent", "discount_percent", "discountPct", "discount_pct"}
	keyDiscFlat    = []string{"discountFlat", "discount_flat", "discountAmount", "discount_amount"}
	keyLines       = []string{"lineItems", "line_items", "items", "lines"}
	keyInvDiscount = []string{"invoiceDiscount", "invoice_discount"}
)

// Invoice normaliza una factura cruda.
func Invoice(r map[string]any) entity.Invoice {
	inv := entity.Invoice{
		ID:            str(r, keyID...),
		Number:        str(r, keyNumber...),
		InvoiceType:   str(r, keyInvType...),
		Status:        str(r, keyStatus...),
		PartyID:       partyRef(r),
		Date:          timeOf(r, keyDate...),
		IsInterState:  boolOf(r, keyInter...),
		Subtotal:      dec(r, keySubtotal...),
		TotalDiscount: dec(r, keyTotDisc...),
		TaxableAmount: dec(r, keyTaxable...),
		CGST:          dec(r, keyCGST...),
		SGST:          dec(r, keySGST...),
		IGST:          dec(r, keyIGST...),
		TotalAmount:   dec(r, keyTotal...),
		PaidAmount:    dec(r, keyPaid...),
		Notes:         str(r, keyNotes...),
	}
	if due := timeOf(r, keyDueDate...); !due.IsZero() {
		inv.DueDate = &due
	}
	return inv
}

// Payment normaliza un pago crudo.
func Payment(r map[string]any) entity.Payment {
	return entity.Payment{
		ID:        str(r, keyID...),
		InvoiceID: invoiceRef(r),
		PartyID:   partyRef(r),
		Amount:    dec(r, keyAmount...),
		Mode:      str(r, keyMode...),
		Reference: str(r, keyReference...),
		PaidAt:    timeOf(r, keyPaidAt...),
	}
}

// Item normaliza un ítem de inventario. Un umbral ausente o ilegible queda en nil.
func Item(r map[string]any) entity.Item {
	it := entity.Item{
		ID:             str(r, keyID...),
		SKU:            str(r, keySKU...),
		Name:           str(r, keyName...),
		HSNCode:        str(r, keyHSN...),
		Unit:           str(r, keyUnit...),
		SalePrice:      dec(r, keySale...),
		PurchasePrice:  dec(r, keyPurchase...),
		TaxRatePercent: dec(r, keyTaxRate...),
		CurrentStock:   dec(r, keyStock...),
	}
	if v, ok := lookup(r, keyThreshold...); ok {
		if d, ok := toDecimal(v); ok {
			it.ReorderThreshold = &d
		}
	}
	return it
}

// Party normaliza un tercero. Si no trae código de estado se toma del GSTIN.
func Party(r map[string]any) entity.Party {
	p := entity.Party{
		ID:        str(r, keyID...),
		Name:      str(r, keyName...),
		Type:      str(r, keyPartyType...),
		GSTIN:     gstin.Normalize(str(r, keyGSTIN...)),
		StateCode: strings.TrimSpace(str(r, keyStateCode...)),
		Email:     str(r, keyEmail...),
		Phone:     str(r, keyPhone...),
		Address:   str(r, keyAddress...),
	}
	if p.StateCode == "" {
		p.StateCode = gstin.StateCode(p.GSTIN)
	}
	return p
}

// LineItem normaliza una línea de cálculo GST.
func LineItem(r map[string]any) gst.LineItem {
	return gst.LineItem{
		Description:     str(r, keyDescription...),
		HSNCode:         str(r, keyHSN...),
		Quantity:        dec(r, keyQuantity...),
		UnitPrice:       dec(r, keyUnitPrice...),
		DiscountPercent: dec(r, keyDiscPct...),
		DiscountFlat:    dec(r, keyDiscFlat...),
		TaxRatePercent:  dec(r, keyTaxRate...),
	}
}

// InvoiceContext normaliza la entrada completa del calculador. El descuento global
// puede venir anidado ({"invoice_discount": {"percent": 10}}) o plano en la raíz.
func InvoiceContext(r map[string]any) gst.InvoiceContext {
	ctx := gst.InvoiceContext{IsInterState: boolOf(r, keyInter...)}
	for _, rec := range records(r, keyLines...) {
		ctx.LineItems = append(ctx.LineItems, LineItem(rec))
	}
	if nested, ok := lookup(r, keyInvDiscount...); ok {
		d := toMap(nested)
		ctx.InvoiceDiscount = gst.InvoiceDiscount{
			Percent: dec(d, append([]string{"percent"}, keyDiscPct...)...),
			Flat:    dec(d, append([]string{"flat", "amount"}, keyDiscFlat...)...),
		}
		return ctx
	}
	ctx.InvoiceDiscount = gst.InvoiceDiscount{
		Percent: dec(r, keyDiscPct...),
		Flat:    dec(r, keyDiscFlat...),
	}
	return ctx
}

// DashboardInputs normaliza una instantánea con las cuatro colecciones del tablero.
func DashboardInputs(r map[string]any) dashboard.Inputs {
	return dashboard.Inputs{
		Invoices: Invoices(first(r, "invoices")),
		Payments: Payments(first(r, "payments")),
		Items:    Items(first(r, "items", "products", "inventory")),
		Parties:  Parties(first(r, "parties", "contacts")),
	}
}

// Invoices normaliza una colección. Un elemento que no es objeto cuenta como registro vacío.
func Invoices(raw any) []entity.Invoice {
	list := toSlice(raw)
	out := make([]entity.Invoice, 0, len(list))
	for _, v := range list {
		out = append(out, Invoice(toMap(v)))
	}
	return out
}

// Payments normaliza una colección de pagos.
func Payments(raw any) []entity.Payment {
	list := toSlice(raw)
	out := make([]entity.Payment, 0, len(list))
	for _, v := range list {
		out = append(out, Payment(toMap(v)))
	}
	return out
}

// Items normaliza una colección de ítems.
func Items(raw any) []entity.Item {
	list := toSlice(raw)
	out := make([]entity.Item, 0, len(list))
	for _, v := range list {
		out = append(out, Item(toMap(v)))
	}
	return out
}

// Parties normaliza una colección de terceros.
func Parties(raw any) []entity.Party {
	list := toSlice(raw)
	out := make([]entity.Party, 0, len(list))
	for _, v := range list {
		out = append(out, Party(toMap(v)))
	}
	return out
}

// Collection extrae la lista de una respuesta que puede ser un arreglo o un
// sobre del tipo {"data": [...]} / {"items": [...]} / {"results": [...]}.
func Collection(raw any, keys ...string) []any {
	if list, err := cast.ToSliceE(raw); err == nil && raw != nil {
		return list
	}
	m := toMap(raw)
	return toSlice(first(m, append(keys, "data", "results", "records")...))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func lookup(r map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func first(r map[string]any, keys ...string) any {
	v, _ := lookup(r, keys...)
	return v
}

func str(r map[string]any, keys ...string) string {
	v, ok := lookup(r, keys...)
	if !ok {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return s
}

func dec(r map[string]any, keys ...string) decimal.Decimal {
	v, ok := lookup(r, keys...)
	if !ok {
		return decimal.Zero
	}
	d, _ := toDecimal(v)
	return d
}

// toDecimal convierte números y strings ("1,180.50", "₹ 99") sin pasar por float64
// cuando el valor ya es texto.
func toDecimal(v any) (decimal.Decimal, bool) {
	if d, ok := v.(decimal.Decimal); ok {
		return d, true
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return decimal.Zero, false
	}
	s = strings.NewReplacer(",", "", "₹", "", " ", "").Replace(strings.TrimSpace(s))
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func boolOf(r map[string]any, keys ...string) bool {
	v, ok := lookup(r, keys...)
	if !ok {
		return false
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false
	}
	return b
}

func timeOf(r map[string]any, keys ...string) time.Time {
	v, ok := lookup(r, keys...)
	if !ok {
		return time.Time{}
	}
	t, err := cast.ToTimeE(v)
	if err != nil {
		return time.Time{}
	}
	return t
}

// partyRef acepta el id plano o el objeto anidado {"party": {"id": ...}}.
func partyRef(r map[string]any) string {
	if id := str(r, keyPartyID...); id != "" {
		return id
	}
	for _, k := range []string{"party", "customer", "supplier"} {
		if nested, ok := r[k]; ok {
			if id := str(toMap(nested), keyID...); id != "" {
				return id
			}
		}
	}
	return ""
}

func invoiceRef(r map[string]any) string {
	if id := str(r, keyInvoiceID...); id != "" {
		return id
	}
	if nested, ok := r["invoice"]; ok {
		return str(toMap(nested), keyID...)
	}
	return ""
}

func records(r map[string]any, keys ...string) []map[string]any {
	list := toSlice(first(r, keys...))
	out := make([]map[string]any, 0, len(list))
	for _, v := range list {
		out = append(out, toMap(v))
	}
	return out
}

func toMap(v any) map[string]any {
	m, err := cast.ToStringMapE(v)
	if err != nil || m == nil {
		return map[string]any{}
	}
	return m
}

func toSlice(v any) []any {
	if v == nil {
		return nil
	}
	list, err := cast.ToSliceE(v)
	if err != nil {
		return nil
	}
	return list
}
