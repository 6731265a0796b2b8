// Package pdf renders invoices into self-contained HTML documents and hands
// them to a headless-browser engine for fixed-layout printing.
package pdf

import (
	"bytes"
	"html/template"
	"strconv"

	"transfer-backend/internal/models"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultCompanyName is printed when no company profile has been saved yet.
const DefaultCompanyName = "ОсОО «Байсал Тревел»"

var ruPrinter = message.NewPrinter(language.Russian)

type documentItem struct {
	Qty         int
	Description string
	UnitPrice   string
	Amount      string
}

type documentData struct {
	InvoiceNo     string
	CompanyName   string
	Address       string
	TaxID         string
	BankName      string
	IBAN          string
	SWIFT         string
	IssueDate     string
	DueDate       string
	PaymentMethod string
	CustomerName  string
	ContactPerson string
	CustomerPhone string
	CustomerEmail string
	Total         string
	Logo          template.URL
	Items         []documentItem
	OfficeLines   []string
}

// RenderHTML maps an assembled invoice and the company profile (possibly
// nil) into a complete HTML document. All user-controlled text goes through
// html/template's contextual escaping, so stored markup cannot become live
// markup in the printed document.
func RenderHTML(inv *models.Invoice, company *models.CompanyProfile) (string, error) {
	data := documentData{
		InvoiceNo:     inv.InvoiceNumber,
		CompanyName:   DefaultCompanyName,
		IssueDate:     "—",
		DueDate:       "—",
		PaymentMethod: "Перечислением",
		CustomerName:  "—",
		Total:         formatMoney(inv.Total),
		Logo:          logoDataURI(),
	}

	if company != nil {
		if company.CompanyName != "" {
			data.CompanyName = company.CompanyName
		}
		data.Address = company.Address
		data.TaxID = company.TaxID
		data.BankName = company.BankName
		data.IBAN = company.IBAN
		data.SWIFT = company.SWIFT
		for _, line := range []string{company.Address, company.Website, company.Notes} {
			if line != "" {
				data.OfficeLines = append(data.OfficeLines, line)
			}
		}
	}

	if c := inv.Customer; c != nil {
		if c.Name != "" {
			data.CustomerName = c.Name
		}
		data.ContactPerson = c.ContactPerson
		data.CustomerPhone = c.Phone
		data.CustomerEmail = c.Email
	}
	if data.ContactPerson == "" {
		data.ContactPerson = data.CustomerName
	}

	if !inv.IssueDate.IsZero() {
		data.IssueDate = inv.IssueDate.Format("02.01.2006")
	}
	if inv.DueDate != nil && !inv.DueDate.IsZero() {
		data.DueDate = inv.DueDate.Format("02.01.2006")
	}
	if inv.PaymentMethod != "" {
		data.PaymentMethod = inv.PaymentMethod
	}

	for _, it := range inv.Items {
		qty := it.Qty
		if qty == 0 {
			qty = 1
		}
		desc := it.Description
		if desc == "" {
			desc = "—"
		}
		data.Items = append(data.Items, documentItem{
			Qty:         qty,
			Description: desc,
			UnitPrice:   formatMoney(it.UnitPrice),
			Amount:      formatMoney(it.Amount),
		})
	}

	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// formatMoney renders a decimal string with ru-RU digit grouping and exactly
// two fractional digits; unparseable input passes through verbatim.
func formatMoney(s string) string {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	return ruPrinter.Sprintf("%v", number.Decimal(v, number.Scale(2)))
}

var documentTemplate = template.Must(template.New("invoice").Parse(`<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Счет к оплате № {{.InvoiceNo}}</title>
  <style>
    * { box-sizing: border-box; }
    body {
      margin: 0;
      font-family: Arial, sans-serif;
      color: #111;
      background: #fff;
      font-size: 14px;
      line-height: 1.35;
    }
    .page { width: 1020px; margin: 22px auto 30px; }
    .top {
      display: grid;
      grid-template-columns: 240px 1fr 140px;
      gap: 14px;
      align-items: start;
      min-height: 126px;
    }
    .logo-wrap {
      width: 220px;
      min-height: 120px;
      display: flex;
      align-items: center;
      justify-content: flex-start;
    }
    .logo { max-width: 220px; max-height: 118px; object-fit: contain; }
    .company-head {
      text-align: center;
      font-size: 15px;
      line-height: 1.35;
      padding-top: 10px;
    }
    .issue-date {
      text-align: right;
      font-size: 38px;
      font-weight: 700;
      padding-top: 90px;
      white-space: nowrap;
    }
    .title {
      text-align: center;
      font-size: 45px;
      font-weight: 700;
      margin: 56px 0 48px;
    }
    .party { margin: 0 0 28px 0; font-size: 16px; }
    .party-row {
      display: flex;
      align-items: baseline;
      gap: 20px;
      margin-top: 9px;
    }
    .party-row .label { width: 200px; color: #222; }
    .party-row .value { font-weight: 700; }
    .table-wrap { margin-top: 20px; }
    table.items {
      width: 100%;
      border-collapse: collapse;
      table-layout: fixed;
      font-size: 16px;
    }
    table.items th,
    table.items td {
      border: 3px solid #111;
      padding: 13px 14px;
      vertical-align: middle;
    }
    table.items th {
      background: #efefef;
      font-weight: 700;
      text-align: center;
    }
    table.items th:nth-child(1) { width: 14%; }
    table.items th:nth-child(2) { width: 58%; }
    table.items th:nth-child(3) { width: 13.5%; }
    table.items th:nth-child(4) { width: 14.5%; }
    .c { text-align: center; }
    .r { text-align: right; }
    .l { text-align: left; }
    .total-row td { font-weight: 700; background: #fafafa; }
    .total-label { text-align: right; font-weight: 700; }
    .note {
      margin-top: 42px;
      text-align: center;
      font-size: 16px;
      line-height: 1.45;
    }
    .note .thanks { margin-top: 8px; font-size: 18px; font-weight: 700; }
    .bank { margin-top: 34px; font-size: 16px; line-height: 1.42; }
    .bank .warn { margin-top: 24px; }
    .contacts { margin-top: 82px; font-size: 16px; line-height: 1.45; }
    .contact-row {
      display: grid;
      grid-template-columns: 320px 1fr;
      gap: 26px;
      margin-bottom: 16px;
      align-items: start;
    }
    .contact-value b { font-weight: 700; }
  </style>
</head>
<body>
  <div class="page">
    <div class="top">
      <div class="logo-wrap">
        {{if .Logo}}<img class="logo" src="{{.Logo}}" alt="logo" />{{end}}
      </div>
      <div class="company-head">
        <div>{{.CompanyName}}</div>
        {{if .Address}}<div>{{.Address}}</div>{{end}}
        {{if .TaxID}}<div>ИНН {{.TaxID}}</div>{{end}}
      </div>
      <div class="issue-date">{{.IssueDate}}</div>
    </div>

    <div class="title">Счет к оплате № {{.InvoiceNo}}</div>

    <div class="party">
      <div class="party-row">
        <div class="label">Кому:</div>
        <div class="value">{{.CustomerName}}</div>
      </div>
      <div class="party-row">
        <div class="label">Срок оплаты:</div>
        <div>{{.DueDate}}</div>
      </div>
      <div class="party-row">
        <div class="label">Форма оплаты:</div>
        <div>{{.PaymentMethod}}</div>
      </div>
    </div>

    <div class="table-wrap">
      <table class="items">
        <thead>
          <tr>
            <th>Количество</th>
            <th>Описание</th>
            <th>Цена за единицу, сом</th>
            <th>Сумма, сом</th>
          </tr>
        </thead>
        <tbody>
          {{range .Items}}<tr>
            <td class="c">{{.Qty}}</td>
            <td class="l">{{.Description}}</td>
            <td class="r">{{.UnitPrice}}</td>
            <td class="r">{{.Amount}}</td>
          </tr>
          {{else}}<tr><td class="c">1</td><td class="l">—</td><td class="r">0,00</td><td class="r">0,00</td></tr>
          {{end}}<tr class="total-row">
            <td></td>
            <td class="total-label">ИТОГО:</td>
            <td></td>
            <td class="r">{{.Total}}</td>
          </tr>
        </tbody>
      </table>
    </div>

    <div class="note">
      <div>Если у Вас возникли какие-либо вопросы касательно данного счета,</div>
      <div>пожалуйста звоните Байсал Тревел.</div>
      <div class="thanks">БЛАГОДАРИМ ЗА СОТРУДНИЧЕСТВО!</div>
    </div>

    <div class="bank">
      <div>Получатель: {{.CompanyName}}</div>
      {{if .BankName}}<div>Банк Получателя: {{.BankName}}</div>{{end}}
      {{if .IBAN}}<div>Расчетный счет: {{.IBAN}}</div>{{end}}
      {{if .SWIFT}}<div>БИК: {{.SWIFT}}</div>{{end}}
      <div class="warn">Все банковские расходы оплачивает отправитель!</div>
    </div>

    <div class="contacts">
      <div class="contact-row">
        <div>Контактное лицо</div>
        <div class="contact-value"><b>{{.ContactPerson}}</b></div>
      </div>
      <div class="contact-row">
        <div>Офис, выписавший инвойс</div>
        <div class="contact-value">
          {{if .OfficeLines}}{{range $i, $line := .OfficeLines}}{{if $i}}<br/>{{end}}{{$line}}{{end}}{{else}}—{{end}}
          {{if .CustomerPhone}}<br/>Тел.: {{.CustomerPhone}}{{end}}
          {{if .CustomerEmail}}<br/>{{.CustomerEmail}}{{end}}
        </div>
      </div>
    </div>
  </div>
</body>
</html>
`))
