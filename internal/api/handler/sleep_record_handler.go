package handler

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"regexp"
	"strconv"

	"github.com/blaisecz/sleep-records/internal/api/validation"
	"github.com/blaisecz/sleep-records/internal/domain"
	"github.com/blaisecz/sleep-records/internal/service"
	"github.com/blaisecz/sleep-records/pkg/logger"
	"github.com/blaisecz/sleep-records/pkg/response"
	"github.com/go-chi/chi/v5"
)

const (
	msgInvalidID      = "유효하지 않은 수면 기록 ID입니다."
	msgNotFound       = "수면 기록을 찾을 수 없습니다."
	msgInvalidBody    = "요청 본문이 올바른 JSON 형식이 아닙니다."
	msgCreated        = "수면 기록이 성공적으로 생성되었습니다."
	msgUpdated        = "수면 기록이 성공적으로 수정되었습니다."
	msgDeleted        = "수면 기록이 성공적으로 삭제되었습니다."
	msgListFailed     = "수면 기록 목록을 불러오는데 실패했습니다."
	msgGetFailed      = "수면 기록 정보를 불러오는데 실패했습니다."
	msgCreateFailed   = "수면 기록 생성에 실패했습니다."
	msgUpdateFailed   = "수면 기록 수정에 실패했습니다."
	msgDeleteFailed   = "수면 기록 삭제에 실패했습니다."
	msgStatsFailed    = "수면 통계를 불러오는데 실패했습니다."
	msgBadgesFailed   = "수면 배지 정보를 불러오는데 실패했습니다."
	msgInvalidRequest = "입력값이 올바르지 않습니다."
)

var idPattern = regexp.MustCompile(`^\d+$`)

type SleepRecordHandler struct {
	records service.SleepRecordService
	badges  service.BadgeService
	log     *logger.Logger
}

func NewSleepRecordHandler(records service.SleepRecordService, badges service.BadgeService, log *logger.Logger) *SleepRecordHandler {
	return &SleepRecordHandler{
		records: records,
		badges:  badges,
		log:     log.Component("sleep-record-handler"),
	}
}

// List handles GET /api/sleep-records
// @Summary List sleep records
// @Description Return every sleep record, newest date first.
// @Tags sleep-records
// @Produce json
// @Success 200 {object} response.Success{data=[]domain.SleepRecord} "Sleep records"
// @Failure 500 {object} response.Failure "Server error"
// @Router /sleep-records [get]
func (h *SleepRecordHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.records.List(r.Context())
	if err != nil {
		h.fail(w, err, msgListFailed)
		return
	}
	response.OK(w, records, "")
}

// Get handles GET /api/sleep-records/{id}
// @Summary Get a sleep record
// @Tags sleep-records
// @Produce json
// @Param id path string true "Sleep record ID" example(1)
// @Success 200 {object} response.Success{data=domain.SleepRecord} "Sleep record"
// @Failure 400 {object} response.Failure "Invalid ID"
// @Failure 404 {object} response.Failure "Record not found"
// @Failure 500 {object} response.Failure "Server error"
// @Router /sleep-records/{id} [get]
func (h *SleepRecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseRecordID(w, r)
	if !ok {
		return
	}

	record, err := h.records.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.NotFound(msgNotFound).Write(w)
			return
		}
		h.fail(w, err, msgGetFailed)
		return
	}
	response.OK(w, record, "")
}

// Create handles POST /api/sleep-records
// @Summary Record a night of sleep
// @Tags sleep-records
// @Accept json
// @Produce json
// @Param request body domain.CreateSleepRecordRequest true "Sleep record"
// @Success 201 {object} response.Success{data=domain.SleepRecord} "Created record"
// @Failure 400 {object} response.Failure "Invalid request body"
// @Failure 500 {object} response.Failure "Server error"
// @Router /sleep-records [post]
func (h *SleepRecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateSleepRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(msgInvalidBody).Write(w)
		return
	}

	if fieldErrors := validation.Validate(&req); fieldErrors != nil {
		response.ValidationError(validation.Summary(fieldErrors), fieldErrors).Write(w)
		return
	}

	record, err := h.records.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			response.BadRequest(msgInvalidRequest).Write(w)
			return
		}
		h.fail(w, err, msgCreateFailed)
		return
	}
	response.Created(w, record, msgCreated)
}

// Update handles PUT /api/sleep-records/{id}
// @Summary Update a sleep record
// @Description Partial update. Fields left out keep their stored value.
// @Tags sleep-records
// @Accept json
// @Produce json
// @Param id path string true "Sleep record ID" example(1)
// @Param request body domain.UpdateSleepRecordRequest true "Fields to change"
// @Success 200 {object} response.Success{data=domain.SleepRecord} "Updated record"
// @Failure 400 {object} response.Failure "Invalid ID or request body"
// @Failure 404 {object} response.Failure "Record not found"
// @Failure 500 {object} response.Failure "Server error"
// @Router /sleep-records/{id} [put]
func (h *SleepRecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseRecordID(w, r)
	if !ok {
		return
	}

	var req domain.UpdateSleepRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(msgInvalidBody).Write(w)
		return
	}

	if fieldErrors := validation.Validate(&req); fieldErrors != nil {
		response.ValidationError(validation.Summary(fieldErrors), fieldErrors).Write(w)
		return
	}

	record, err := h.records.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			response.NotFound(msgNotFound).Write(w)
		case errors.Is(err, domain.ErrInvalidInput):
			response.BadRequest(msgInvalidRequest).Write(w)
		default:
			h.fail(w, err, msgUpdateFailed)
		}
		return
	}
	response.OK(w, record, msgUpdated)
}

// Delete handles DELETE /api/sleep-records/{id}
// @Summary Delete a sleep record
// @Tags sleep-records
// @Produce json
// @Param id path string true "Sleep record ID" example(1)
// @Success 200 {object} response.Success "Record deleted (data is null)"
// @Failure 400 {object} response.Failure "Invalid ID"
// @Failure 404 {object} response.Failure "Record not found"
// @Failure 500 {object} response.Failure "Server error"
// @Router /sleep-records/{id} [delete]
func (h *SleepRecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseRecordID(w, r)
	if !ok {
		return
	}

	if _, err := h.records.Get(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.NotFound(msgNotFound).Write(w)
			return
		}
		h.fail(w, err, msgDeleteFailed)
		return
	}

	deleted, err := h.records.Delete(r.Context(), id)
	if err != nil {
		h.fail(w, err, msgDeleteFailed)
		return
	}
	if !deleted {
		h.log.Error().Uint("id", id).Msg("Sleep record vanished before delete")
		response.InternalError(msgDeleteFailed).Write(w)
		return
	}
	response.OK(w, nil, msgDeleted)
}

// Statistics handles GET /api/sleep-records/sleep-statistics
// @Summary Sleep statistics
// @Description Overall average, per-weekday averages and averages of consecutive 7-record chunks.
// @Tags sleep-records
// @Produce json
// @Success 200 {object} response.Success{data=domain.SleepStatistics} "Statistics"
// @Failure 500 {object} response.Failure "Server error"
// @Router /sleep-records/sleep-statistics [get]
func (h *SleepRecordHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.records.Statistics(r.Context())
	if err != nil {
		h.fail(w, err, msgStatsFailed)
		return
	}
	response.OK(w, stats, "")
}

// Badges handles GET /api/sleep-records/badges
// @Summary Achievement badges
// @Description Evaluate every badge against the stored records.
// @Tags sleep-records
// @Produce json
// @Success 200 {object} response.Success{data=domain.BadgeSummary} "Badge summary"
// @Failure 500 {object} response.Failure "Server error"
// @Router /sleep-records/badges [get]
func (h *SleepRecordHandler) Badges(w http.ResponseWriter, r *http.Request) {
	summary, err := h.badges.Summary(r.Context())
	if err != nil {
		h.fail(w, err, msgBadgesFailed)
		return
	}
	response.OK(w, summary, "")
}

func (h *SleepRecordHandler) fail(w http.ResponseWriter, err error, message string) {
	h.log.Error().Err(err).Msg(message)
	response.InternalError(message).Write(w)
}

// parseRecordID reads the {id} path parameter. It writes a 400 and returns
// false when the parameter is not a plain decimal number. Numbers larger
// than any storable id map to 0, which no record has, so they end up as 404.
func parseRecordID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	if !idPattern.MatchString(raw) {
		response.BadRequest(msgInvalidID).Write(w)
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id > math.MaxInt64 {
		return 0, true
	}
	return uint(id), true
}
