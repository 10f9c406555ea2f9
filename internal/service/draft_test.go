package service

import (
	"testing"

	"github.com/phenixmation/payables/internal/api/dto"
	"github.com/phenixmation/payables/internal/domain/invoice"
	ierr "github.com/phenixmation/payables/internal/errors"
	"github.com/phenixmation/payables/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type DraftServiceSuite struct {
	testutil.BaseServiceTestSuite
	service DraftService
}

func TestDraftService(t *testing.T) {
	suite.Run(t, new(DraftServiceSuite))
}

func newTestServiceParams(s *testutil.BaseServiceTestSuite) ServiceParams {
	stores := s.GetStores()
	return NewServiceParams(
		s.GetLogger(),
		s.GetConfig(),
		s.GetSession(),
		s.GetPDFGenerator(),
		stores.AuthRepo,
		stores.UserRepo,
		stores.InvoiceRepo,
		s.GetCache(),
		s.GetDrafts(),
	)
}

func seedInvoice(s *testutil.BaseServiceTestSuite, number int64) *invoice.Invoice {
	inv := invoice.NewBlankInvoice(newTestServiceParams(s).InvoiceDefaults(), s.GetNow())
	inv.Number = number
	s.GetStores().InvoiceRepo.Seed(inv)
	return inv
}

func value(v string) *dto.FormValue {
	fv := dto.FormValue(v)
	return &fv
}

func (s *DraftServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.LogIn("tok")
	s.service = NewDraftService(newTestServiceParams(&s.BaseServiceTestSuite))
}

func (s *DraftServiceSuite) TestNewDraftStartsWithSeededLine() {
	resp, err := s.service.NewDraft(s.GetContext())
	s.Require().NoError(err)

	s.Equal(invoice.DraftModeCreate, resp.Mode)
	s.Require().Len(resp.Invoice.LineItems, 1)
	s.Equal(invoice.SeedDescription, resp.Invoice.LineItems[0].Description)
	s.Equal("105.00", resp.Invoice.GrandTotal)
	s.Equal(1, s.GetDrafts().Count())
}

func (s *DraftServiceSuite) TestLineEditsRecalculateTotals() {
	ctx := s.GetContext()
	d, err := s.service.NewDraft(ctx)
	s.Require().NoError(err)

	resp, err := s.service.UpdateLine(ctx, d.ID, 0, &dto.UpdateLineItemRequest{Quantity: value("2")})
	s.Require().NoError(err)
	s.Equal("210.00", resp.Invoice.GrandTotal)

	resp, err = s.service.AddLine(ctx, d.ID)
	s.Require().NoError(err)
	s.Len(resp.Invoice.LineItems, 2)

	resp, err = s.service.UpdateLine(ctx, d.ID, 1, &dto.UpdateLineItemRequest{
		Description: value("Conseil"),
		UnitPrice:   value("40"),
	})
	s.Require().NoError(err)
	s.Equal("252.00", resp.Invoice.GrandTotal)

	resp, err = s.service.RemoveLine(ctx, d.ID, 0)
	s.Require().NoError(err)
	s.Require().Len(resp.Invoice.LineItems, 1)
	s.Equal("Conseil", resp.Invoice.LineItems[0].Description)
	s.Equal("42.00", resp.Invoice.GrandTotal)

	// the stored draft follows the returned state
	stored, err := s.service.GetDraft(ctx, d.ID)
	s.Require().NoError(err)
	s.Equal(resp.Invoice, stored.Invoice)
}

func (s *DraftServiceSuite) TestRemoveLineOutOfRange() {
	ctx := s.GetContext()
	d, err := s.service.NewDraft(ctx)
	s.Require().NoError(err)

	_, err = s.service.RemoveLine(ctx, d.ID, 3)
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *DraftServiceSuite) TestRejectedUpdateLeavesDraftUnchanged() {
	ctx := s.GetContext()
	d, err := s.service.NewDraft(ctx)
	s.Require().NoError(err)

	_, err = s.service.UpdateDraft(ctx, d.ID, &dto.UpdateDraftRequest{
		Notes:     value("payable sous 30 jours"),
		IssueDate: value("hier"),
	})
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))

	stored, err := s.service.GetDraft(ctx, d.ID)
	s.Require().NoError(err)
	s.Empty(stored.Invoice.Notes)
	s.Equal(d.Invoice.IssueDate, stored.Invoice.IssueDate)
}

func (s *DraftServiceSuite) TestEmptyUpdateIsRejected() {
	ctx := s.GetContext()
	d, err := s.service.NewDraft(ctx)
	s.Require().NoError(err)

	_, err = s.service.UpdateDraft(ctx, d.ID, &dto.UpdateDraftRequest{})
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *DraftServiceSuite) TestUnknownDraft() {
	_, err := s.service.GetDraft(s.GetContext(), "draft_missing")
	s.Require().Error(err)
	s.True(ierr.IsNotFound(err))

	err = s.service.DiscardDraft(s.GetContext(), "draft_missing")
	s.Require().Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *DraftServiceSuite) TestSubmitCreatesInvoiceAndDropsDraft() {
	ctx := s.GetContext()
	d, err := s.service.NewDraft(ctx)
	s.Require().NoError(err)

	resp, err := s.service.SubmitDraft(ctx, d.ID)
	s.Require().NoError(err)
	s.True(resp.Created)
	s.Equal(int64(1), resp.Invoice.Number)
	s.Equal("105.00", resp.Invoice.GrandTotal)

	stored, err := s.GetStores().InvoiceRepo.Get(ctx, 1)
	s.Require().NoError(err)
	s.True(stored.GrandTotal.Equal(decimal.NewFromInt(105)))

	_, err = s.service.GetDraft(ctx, d.ID)
	s.True(ierr.IsNotFound(err))
}

func (s *DraftServiceSuite) TestInvalidDraftIsNotSent() {
	ctx := s.GetContext()
	d, err := s.service.NewDraft(ctx)
	s.Require().NoError(err)
	_, err = s.service.AddLine(ctx, d.ID)
	s.Require().NoError(err)

	// the added line has no description
	_, err = s.service.SubmitDraft(ctx, d.ID)
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
	s.Zero(s.GetStores().InvoiceRepo.Calls(testutil.OpCreate))

	_, err = s.service.GetDraft(ctx, d.ID)
	s.NoError(err)
}

func (s *DraftServiceSuite) TestFailedSubmitKeepsDraft() {
	ctx := s.GetContext()
	d, err := s.service.NewDraft(ctx)
	s.Require().NoError(err)

	s.GetStores().InvoiceRepo.FailOn(testutil.OpCreate,
		ierr.NewError("remote API answered 500").Mark(ierr.ErrHTTPClient))

	_, err = s.service.SubmitDraft(ctx, d.ID)
	s.Require().Error(err)
	s.True(ierr.IsHTTPClient(err))
	s.True(s.GetSession().IsLoggedIn())

	_, err = s.service.GetDraft(ctx, d.ID)
	s.NoError(err)
}

func (s *DraftServiceSuite) TestRejectedTokenLogsOutOnSubmit() {
	ctx := s.GetContext()
	d, err := s.service.NewDraft(ctx)
	s.Require().NoError(err)

	s.GetStores().InvoiceRepo.FailOn(testutil.OpCreate,
		ierr.NewError("remote API answered 401").Mark(ierr.ErrUnauthorized))

	_, err = s.service.SubmitDraft(ctx, d.ID)
	s.Require().Error(err)
	s.True(ierr.IsUnauthorized(err))
	s.False(s.GetSession().IsLoggedIn())
	s.Empty(s.GetStores().TokenStore.Stored())

	_, err = s.service.GetDraft(ctx, d.ID)
	s.NoError(err)
}

func (s *DraftServiceSuite) TestEditAndSubmitUpdatesInvoice() {
	ctx := s.GetContext()
	seedInvoice(&s.BaseServiceTestSuite, 12)

	d, err := s.service.EditDraft(ctx, 12)
	s.Require().NoError(err)
	s.Equal(invoice.DraftModeUpdate, d.Mode)
	s.Equal(int64(12), d.Invoice.Number)

	_, err = s.service.UpdateDraft(ctx, d.ID, &dto.UpdateDraftRequest{Number: value("13")})
	s.Require().Error(err)
	s.True(ierr.IsInvalidOperation(err))

	_, err = s.service.UpdateDraft(ctx, d.ID, &dto.UpdateDraftRequest{Notes: value("relance envoyée")})
	s.Require().NoError(err)

	resp, err := s.service.SubmitDraft(ctx, d.ID)
	s.Require().NoError(err)
	s.False(resp.Created)
	s.Equal(int64(12), resp.Invoice.Number)
	s.Equal(1, s.GetStores().InvoiceRepo.Calls(testutil.OpUpdate))

	stored, err := s.GetStores().InvoiceRepo.Get(ctx, 12)
	s.Require().NoError(err)
	s.Equal("relance envoyée", stored.Notes)
}

func (s *DraftServiceSuite) TestEditUnknownInvoice() {
	_, err := s.service.EditDraft(s.GetContext(), 99)
	s.Require().Error(err)
	s.True(ierr.IsNotFound(err))
	s.Zero(s.GetDrafts().Count())
}

func (s *DraftServiceSuite) TestDiscardDraft() {
	ctx := s.GetContext()
	d, err := s.service.NewDraft(ctx)
	s.Require().NoError(err)

	s.Require().NoError(s.service.DiscardDraft(ctx, d.ID))
	_, err = s.service.GetDraft(ctx, d.ID)
	s.True(ierr.IsNotFound(err))
}
