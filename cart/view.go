package cart

import (
	"fmt"
	"html/template"
	"io"
	"strconv"

	"go-storefront/models"
)

// EmptyMessage is shown in place of rows when the cart has no items
const EmptyMessage = "Your cart is empty"

// View is everything the sidebar and badges display
type View struct {
	Count    int
	Empty    bool
	Rows     []Row
	Subtotal float64
}

// Row is one rendered line item
type Row struct {
	ID        string
	Name      string
	Image     string
	Variant   string
	UnitPrice string
	Quantity  int
	LineTotal string
}

// SubtotalText formats the subtotal with a currency prefix and two decimals
func (v View) SubtotalText() string {
	return formatMoney(v.Subtotal)
}

func render(items []models.CartItem) View {
	v := View{Empty: len(items) == 0}
	for _, item := range items {
		v.Count += item.Quantity
		v.Subtotal += item.LineTotal()
		v.Rows = append(v.Rows, Row{
			ID:        item.ID,
			Name:      item.Name,
			Image:     item.Image,
			Variant:   item.Color + ", " + item.Size,
			UnitPrice: "$" + strconv.FormatFloat(item.Price, 'f', -1, 64),
			Quantity:  item.Quantity,
			LineTotal: formatMoney(item.LineTotal()),
		})
	}
	return v
}

func formatMoney(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

var sidebarTemplate = template.Must(template.New("sidebar").Parse(`{{if .Empty}}<div class="cart-empty"><p>{{.EmptyMessage}}</p></div>
{{else}}{{range .Rows}}<div class="cart-row">
<img src="{{.Image}}" alt="{{.Name}}">
<h4>{{.Name}}</h4>
<p class="variant">{{.Variant}}</p>
<p class="unit">{{.UnitPrice}} × {{.Quantity}}</p>
<p class="line-total">{{.LineTotal}}</p>
<button class="remove-item" data-id="{{.ID}}">Remove</button>
</div>
{{end}}{{end}}<span id="cart-subtotal">{{.Subtotal}}</span>
<span class="cart-count">{{.Count}}</span>
`))

// RenderHTML writes the sidebar fragment for v
func RenderHTML(w io.Writer, v View) error {
	return sidebarTemplate.Execute(w, struct {
		View
		EmptyMessage string
		Subtotal     string
	}{View: v, EmptyMessage: EmptyMessage, Subtotal: v.SubtotalText()})
}
