package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/hrportal/hr-backend-go/internal/domain/leave"
	"github.com/hrportal/hr-backend-go/internal/handler/http/response"
	"github.com/hrportal/hr-backend-go/internal/pkg/jwt"
)

type LeaveHandler interface {
	// Balance
	GetMyBalance(w http.ResponseWriter, r *http.Request)
	GetEmployeeBalance(w http.ResponseWriter, r *http.Request)
	SetTotalLeaves(w http.ResponseWriter, r *http.Request)

	// Requests
	Submit(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	ListMyRequests(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Deny(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	jwtService     jwt.Service
	ledgerService  leave.LedgerService
	requestService leave.RequestService
}

func NewLeaveHandler(
	jwtService jwt.Service,
	ledgerService leave.LedgerService,
	requestService leave.RequestService,
) LeaveHandler {
	return &leaveHandlerImpl{
		jwtService:     jwtService,
		ledgerService:  ledgerService,
		requestService: requestService,
	}
}

// ========== BALANCE ==========

func (h *leaveHandlerImpl) GetMyBalance(w http.ResponseWriter, r *http.Request) {
	employeeID, err := h.jwtService.UserID(r.Context())
	if err != nil {
		response.Unauthorized(w, "Token missing user identity")
		return
	}

	result, err := h.ledgerService.GetBalance(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *leaveHandlerImpl) GetEmployeeBalance(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	result, err := h.ledgerService.GetBalance(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *leaveHandlerImpl) SetTotalLeaves(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	var req leave.SetTotalLeavesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.ledgerService.SetTotal(r.Context(), employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave allowance updated", result)
}

// ========== REQUESTS ==========

func (h *leaveHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	employeeID, err := h.jwtService.UserID(r.Context())
	if err != nil {
		response.Unauthorized(w, "Token missing user identity")
		return
	}

	var req leave.SubmitLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.requestService.Submit(r.Context(), employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", result)
}

func (h *leaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	result, err := h.requestService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *leaveHandlerImpl) ListMyRequests(w http.ResponseWriter, r *http.Request) {
	employeeID, err := h.jwtService.UserID(r.Context())
	if err != nil {
		response.Unauthorized(w, "Token missing user identity")
		return
	}

	filter := filterFromQuery(r)
	filter.EmployeeID = employeeID

	result, err := h.requestService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Requests, &response.Meta{
		Limit:      filter.Limit,
		Offset:     filter.Offset,
		TotalItems: result.Total,
	})
}

func (h *leaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r)
	filter.EmployeeID = r.URL.Query().Get("employee_id")

	result, err := h.requestService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Requests, &response.Meta{
		Limit:      filter.Limit,
		Offset:     filter.Offset,
		TotalItems: result.Total,
	})
}

func filterFromQuery(r *http.Request) leave.LeaveRequestFilter {
	query := r.URL.Query()
	filter := leave.LeaveRequestFilter{
		Status: leave.LeaveRequestStatus(query.Get("status")),
	}
	filter.Limit, _ = strconv.Atoi(query.Get("limit"))
	filter.Offset, _ = strconv.Atoi(query.Get("offset"))
	return filter
}

func (h *leaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.requestService.Approve, "Leave request approved")
}

func (h *leaveHandlerImpl) Deny(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.requestService.Deny, "Leave request denied")
}

func (h *leaveHandlerImpl) decide(
	w http.ResponseWriter,
	r *http.Request,
	apply func(ctx context.Context, id, approverID string, req leave.DecideLeaveRequest) (leave.LeaveRequestResponse, error),
	message string,
) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	approverID, err := h.jwtService.UserID(r.Context())
	if err != nil {
		response.Unauthorized(w, "Token missing user identity")
		return
	}

	var req leave.DecideLeaveRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request body", nil)
			return
		}
	}

	result, err := apply(r.Context(), id, approverID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, result)
}

func (h *leaveHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	employeeID, err := h.jwtService.UserID(r.Context())
	if err != nil {
		response.Unauthorized(w, "Token missing user identity")
		return
	}

	result, err := h.requestService.Cancel(r.Context(), id, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request canceled", result)
}
