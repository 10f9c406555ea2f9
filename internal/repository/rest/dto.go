package rest

import (
	"time"

	"github.com/phenixmation/payables/internal/domain/invoice"
	"github.com/phenixmation/payables/internal/domain/user"
	"github.com/phenixmation/payables/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// articleDTO is a line item as the invoice API stores it
type articleDTO struct {
	Description  string  `json:"description"`
	Quantite     float64 `json:"quantite"`
	PrixUnitaire float64 `json:"prixUnitaire"`
	TauxTVA      float64 `json:"tauxTVA"`
	TotalLigne   float64 `json:"totalLigne"`
}

// factureDTO is an invoice as the invoice API stores it. Amounts are JSON numbers.
type factureDTO struct {
	ID            string       `json:"_id,omitempty"`
	NumeroFacture int64        `json:"numeroFacture,omitempty"`
	DateFacture   string       `json:"dateFacture,omitempty"`
	DateEcheance  string       `json:"dateEcheance,omitempty"`
	FournisseurID string       `json:"fournisseurId,omitempty"`
	UtilisateurID string       `json:"utilisateurId,omitempty"`
	Articles      []articleDTO `json:"articles"`
	MontantHT     *float64     `json:"montantHT,omitempty"`
	MontantTVA    *float64     `json:"montantTVA,omitempty"`
	MontantTTC    *float64     `json:"montantTTC,omitempty"`
	Devise        string       `json:"devise,omitempty"`
	Statut        string       `json:"statut,omitempty"`
	ModePaiement  string       `json:"modePaiement,omitempty"`
	Notes         string       `json:"notes,omitempty"`
}

type factureEnvelope struct {
	Facture  *factureDTO  `json:"facture,omitempty"`
	Factures []factureDTO `json:"factures,omitempty"`
}

type userDTO struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type usersEnvelope struct {
	Users []userDTO `json:"users"`
}

type loginRequest struct {
	UserLogin userLogin `json:"userLogin"`
}

type userLogin struct {
	Email      string `json:"email"`
	MotDePasse string `json:"motDePasse"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func toFactureDTO(inv *invoice.Invoice) factureDTO {
	articles := make([]articleDTO, 0, len(inv.LineItems))
	for _, item := range inv.LineItems {
		articles = append(articles, articleDTO{
			Description:  item.Description,
			Quantite:     item.Quantity.InexactFloat64(),
			PrixUnitaire: item.UnitPrice.InexactFloat64(),
			TauxTVA:      item.TaxRatePercent.InexactFloat64(),
			TotalLigne:   item.LineTotal.InexactFloat64(),
		})
	}

	return factureDTO{
		ID:            inv.ID,
		NumeroFacture: inv.Number,
		DateFacture:   types.FormatDate(inv.IssueDate),
		DateEcheance:  types.FormatDate(inv.DueDate),
		FournisseurID: inv.SupplierID,
		UtilisateurID: inv.UserID,
		Articles:      articles,
		MontantHT:     lo.ToPtr(inv.Subtotal.InexactFloat64()),
		MontantTVA:    lo.ToPtr(inv.TaxTotal.InexactFloat64()),
		MontantTTC:    lo.ToPtr(inv.GrandTotal.InexactFloat64()),
		Devise:        inv.Currency,
		Statut:        inv.Status.String(),
		ModePaiement:  inv.PaymentMethod.String(),
		Notes:         inv.Notes,
	}
}

// toInvoice converts a stored invoice. Dates the API sends in a format
// nobody can read are left zero rather than failing the whole screen.
// Stored aggregates are kept as sent; callers recalculate for display.
func (f *factureDTO) toInvoice(loc *time.Location) *invoice.Invoice {
	items := make([]invoice.LineItem, 0, len(f.Articles))
	for _, a := range f.Articles {
		items = append(items, invoice.LineItem{
			Description:    a.Description,
			Quantity:       decimal.NewFromFloat(a.Quantite),
			UnitPrice:      decimal.NewFromFloat(a.PrixUnitaire),
			TaxRatePercent: decimal.NewFromFloat(a.TauxTVA),
			LineTotal:      decimal.NewFromFloat(a.TotalLigne),
		})
	}

	issued, _ := types.ParseDate(f.DateFacture, loc)
	due, _ := types.ParseDate(f.DateEcheance, loc)

	return &invoice.Invoice{
		ID:            f.ID,
		Number:        f.NumeroFacture,
		IssueDate:     issued,
		DueDate:       due,
		SupplierID:    f.FournisseurID,
		UserID:        f.UtilisateurID,
		LineItems:     items,
		Subtotal:      amount(f.MontantHT),
		TaxTotal:      amount(f.MontantTVA),
		GrandTotal:    amount(f.MontantTTC),
		Currency:      f.Devise,
		Status:        types.ParseInvoiceStatus(f.Statut),
		PaymentMethod: types.PaymentMethod(f.ModePaiement),
		Notes:         f.Notes,
	}
}

func (f *factureDTO) toSummary(loc *time.Location) *invoice.Summary {
	issued, _ := types.ParseDate(f.DateFacture, loc)

	s := &invoice.Summary{
		ID:        f.ID,
		Number:    f.NumeroFacture,
		IssueDate: issued,
		Status:    types.ParseInvoiceStatus(f.Statut),
		Currency:  f.Devise,
	}
	if f.MontantTTC != nil {
		s.GrandTotal = lo.ToPtr(decimal.NewFromFloat(*f.MontantTTC))
	}
	return s
}

func (u userDTO) toUser() *user.User {
	return &user.User{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

func amount(v *float64) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*v)
}
