package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GregMSThompson/insights-dashboard/internal/dto"
	"github.com/GregMSThompson/insights-dashboard/internal/errs"
	"github.com/GregMSThompson/insights-dashboard/pkg/grid"
)

type stubDashboardService struct {
	uid, widgetID string

	addReq  dto.AddWidgetRequest
	dropReq dto.DropRequest
	moveReq dto.MoveWidgetRequest

	dashboard dto.DashboardResponse
	widget    dto.WidgetResponse
	change    dto.LayoutChangeResponse
	suggest   dto.SuggestResponse
	err       error
}

func (s *stubDashboardService) GridConfig() dto.GridConfigResponse {
	return dto.GridConfigResponse{Columns: 8, Gap: 16, DefaultRowHeight: 150, MaxScanRows: 200}
}

func (s *stubDashboardService) GetDashboard(_ context.Context, uid string) (dto.DashboardResponse, error) {
	s.uid = uid
	return s.dashboard, s.err
}

func (s *stubDashboardService) AddWidget(_ context.Context, uid string, req dto.AddWidgetRequest) (dto.WidgetResponse, error) {
	s.uid, s.addReq = uid, req
	return s.widget, s.err
}

func (s *stubDashboardService) RemoveWidget(_ context.Context, uid, widgetID string) error {
	s.uid, s.widgetID = uid, widgetID
	return s.err
}

func (s *stubDashboardService) DropWidget(_ context.Context, uid, widgetID string, req dto.DropRequest) (dto.LayoutChangeResponse, error) {
	s.uid, s.widgetID, s.dropReq = uid, widgetID, req
	return s.change, s.err
}

func (s *stubDashboardService) MoveWidget(_ context.Context, uid, widgetID string, req dto.MoveWidgetRequest) (dto.LayoutChangeResponse, error) {
	s.uid, s.widgetID, s.moveReq = uid, widgetID, req
	return s.change, s.err
}

func (s *stubDashboardService) SuggestPosition(_ context.Context, uid, widgetID string, req dto.MoveWidgetRequest) (dto.SuggestResponse, error) {
	s.uid, s.widgetID, s.moveReq = uid, widgetID, req
	return s.suggest, s.err
}

func newDashboardHandlers(svc *stubDashboardService) (*dashboardHandlers, *stubResponseHandler) {
	resp := &stubResponseHandler{}
	return NewDashboardHandlers(&Deps{ResponseHandler: resp, DashboardSvc: svc}), resp
}

func TestGetDashboard_Success(t *testing.T) {
	svc := &stubDashboardService{dashboard: dto.DashboardResponse{Columns: 8}}
	h, resp := newDashboardHandlers(svc)

	req := withUID(httptest.NewRequest(http.MethodGet, "/dashboard", nil), "uid1")
	h.GetDashboard(httptest.NewRecorder(), req)

	if svc.uid != "uid1" {
		t.Errorf("uid = %q", svc.uid)
	}
	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusOK {
		t.Fatalf("expected 200 success, got %+v", resp)
	}
	if got := resp.writeSuccessData.(dto.DashboardResponse); got.Columns != 8 {
		t.Errorf("data = %+v", got)
	}
}

func TestGetDashboard_ServiceError(t *testing.T) {
	svc := &stubDashboardService{err: errors.New("boom")}
	h, resp := newDashboardHandlers(svc)

	h.GetDashboard(httptest.NewRecorder(), withUID(httptest.NewRequest(http.MethodGet, "/dashboard", nil), "uid1"))

	if !resp.handleErrorCalled || resp.writeSuccessCalled {
		t.Fatalf("expected HandleError only, got %+v", resp)
	}
}

func TestAddWidget_Created(t *testing.T) {
	svc := &stubDashboardService{widget: dto.WidgetResponse{WidgetID: "w1"}}
	h, resp := newDashboardHandlers(svc)

	body := `{"type":"chart","size":{"width":4,"height":3}}`
	req := withUID(httptest.NewRequest(http.MethodPost, "/dashboard/widgets", strings.NewReader(body)), "uid1")
	h.AddWidget(httptest.NewRecorder(), req)

	if resp.writeSuccessStatus != http.StatusCreated {
		t.Fatalf("status = %d", resp.writeSuccessStatus)
	}
	if svc.addReq.Type != "chart" || svc.addReq.Size == nil || *svc.addReq.Size != (grid.Size{Width: 4, Height: 3}) {
		t.Errorf("request = %+v", svc.addReq)
	}
}

func TestAddWidget_BadJSON(t *testing.T) {
	svc := &stubDashboardService{}
	h, resp := newDashboardHandlers(svc)

	req := withUID(httptest.NewRequest(http.MethodPost, "/dashboard/widgets", strings.NewReader("{")), "uid1")
	h.AddWidget(httptest.NewRecorder(), req)

	var ve *errs.ValidationError
	if !errors.As(resp.handleError, &ve) {
		t.Fatalf("expected ValidationError, got %v", resp.handleError)
	}
	if svc.uid != "" {
		t.Error("service should not be called")
	}
}

func TestRemoveWidget_PassesID(t *testing.T) {
	svc := &stubDashboardService{}
	h, resp := newDashboardHandlers(svc)

	req := httptest.NewRequest(http.MethodDelete, "/dashboard/widgets/w7", nil)
	req = withChiParam(withUID(req, "uid1"), "widgetId", "w7")
	h.RemoveWidget(httptest.NewRecorder(), req)

	if svc.widgetID != "w7" || svc.uid != "uid1" {
		t.Errorf("got uid=%q widget=%q", svc.uid, svc.widgetID)
	}
	if resp.writeSuccessStatus != http.StatusOK {
		t.Errorf("status = %d", resp.writeSuccessStatus)
	}
}

func TestDropWidget_RejectedIsOK(t *testing.T) {
	svc := &stubDashboardService{change: dto.LayoutChangeResponse{Reason: dto.ReasonCollision}}
	h, resp := newDashboardHandlers(svc)

	body := `{"pointer":{"x":800,"y":60},"surface":{"container":{"left":100,"top":50,"width":784,"height":600},"gap":16,"columns":8}}`
	req := httptest.NewRequest(http.MethodPost, "/dashboard/widgets/w1/drop", strings.NewReader(body))
	req = withChiParam(withUID(req, "uid1"), "widgetId", "w1")
	h.DropWidget(httptest.NewRecorder(), req)

	if resp.writeSuccessStatus != http.StatusOK {
		t.Fatalf("status = %d", resp.writeSuccessStatus)
	}
	if svc.dropReq.Pointer != (grid.Point{X: 800, Y: 60}) {
		t.Errorf("pointer = %+v", svc.dropReq.Pointer)
	}
	if svc.dropReq.Surface.Columns != 8 || svc.dropReq.Surface.Container.Width != 784 {
		t.Errorf("surface = %+v", svc.dropReq.Surface)
	}
	if got := resp.writeSuccessData.(dto.LayoutChangeResponse); got.Accepted {
		t.Error("expected accepted=false to pass through")
	}
}

func TestMoveWidget_ConflictGoesToHandleError(t *testing.T) {
	svc := &stubDashboardService{err: errs.NewConflictError("widget cannot be placed there", dto.ReasonCollision)}
	h, resp := newDashboardHandlers(svc)

	req := httptest.NewRequest(http.MethodPut, "/dashboard/widgets/w1/position", strings.NewReader(`{"x":3,"y":1}`))
	req = withChiParam(withUID(req, "uid1"), "widgetId", "w1")
	h.MoveWidget(httptest.NewRecorder(), req)

	if svc.moveReq != (dto.MoveWidgetRequest{X: 3, Y: 1}) {
		t.Errorf("request = %+v", svc.moveReq)
	}
	var ce *errs.ConflictError
	if !errors.As(resp.handleError, &ce) {
		t.Fatalf("expected ConflictError, got %v", resp.handleError)
	}
}

func TestSuggestPosition(t *testing.T) {
	pos := grid.Position{X: 4, Y: 0}
	svc := &stubDashboardService{suggest: dto.SuggestResponse{Found: true, Position: &pos}}
	h, resp := newDashboardHandlers(svc)

	req := httptest.NewRequest(http.MethodPost, "/dashboard/widgets/w1/suggest", strings.NewReader(`{"x":3,"y":0}`))
	req = withChiParam(withUID(req, "uid1"), "widgetId", "w1")
	h.SuggestPosition(httptest.NewRecorder(), req)

	got, ok := resp.writeSuccessData.(dto.SuggestResponse)
	if !ok || !got.Found || *got.Position != pos {
		t.Fatalf("data = %+v", resp.writeSuccessData)
	}
}

func TestDashboardRoutes_GridConfig(t *testing.T) {
	h, resp := newDashboardHandlers(&stubDashboardService{})

	rec := httptest.NewRecorder()
	h.DashboardRoutes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/grid", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := resp.writeSuccessData.(dto.GridConfigResponse); got.Columns != 8 {
		t.Errorf("data = %+v", got)
	}
}
