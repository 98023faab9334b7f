package transport

import (
	"net/http"
	"strconv"

	"github.com/ganot/committee/internal/apperror"
	"github.com/ganot/committee/internal/domain/activity"
	"github.com/ganot/committee/internal/domain/meeting"
	"github.com/go-chi/chi/v5"
)

type beginVoteRequest struct {
	MeetingID string  `json:"meeting_id"`
	MotionID  *string `json:"motion_id,omitempty"`
}

type endVoteRequest struct {
	MeetingID string `json:"meeting_id"`
}

type castVoteRequest struct {
	MeetingID string `json:"meeting_id"`
	VoteState string `json:"vote_state"`
}

func (s *Server) handleStartMeeting(w http.ResponseWriter, r *http.Request) {
	var req meeting.StartRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	m, err := s.svc.Meetings.Start(r.Context(), caller(r), req)
	s.respond(w, r, http.StatusOK, m, err)
}

func (s *Server) handleGetMeeting(w http.ResponseWriter, r *http.Request) {
	m, err := s.svc.Meetings.Get(r.Context(), caller(r), chi.URLParam(r, "id"))
	s.respond(w, r, http.StatusOK, m, err)
}

func (s *Server) handleMeetingsByMember(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.Meetings.ListForMember(r.Context(), caller(r))
	if list == nil {
		list = []meeting.Summary{}
	}
	s.respond(w, r, http.StatusOK, list, err)
}

func (s *Server) handleMeetingActivity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.svc.Meetings.Get(r.Context(), caller(r), id); err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	opts := activity.ListActivityOptions{MeetingID: id}
	if motionID := r.URL.Query().Get("motion_id"); motionID != "" {
		opts.MotionID = &motionID
	}
	if typ := r.URL.Query().Get("type"); typ != "" {
		at := activity.ActivityType(typ)
		opts.ActivityType = &at
	}
	var fields apperror.Fields
	opts.Limit = queryInt(r, "limit", &fields)
	opts.Offset = queryInt(r, "offset", &fields)
	if err := fields.Err(); err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	entries, err := s.svc.Activity.GetRecentActivity(r.Context(), opts)
	if entries == nil {
		entries = []activity.ActivityEntry{}
	}
	s.respond(w, r, http.StatusOK, entries, err)
}

func queryInt(r *http.Request, name string, fields *apperror.Fields) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		fields.Add(name, "must be a non-negative integer")
		return 0
	}
	return n
}

func (s *Server) handleAdjourn(w http.ResponseWriter, r *http.Request) {
	m, err := s.svc.Meetings.Adjourn(r.Context(), caller(r), chi.URLParam(r, "id"))
	s.respond(w, r, http.StatusOK, m, err)
}

func (s *Server) handleMarkAttendance(w http.ResponseWriter, r *http.Request) {
	var req meeting.AttendanceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	m, err := s.svc.Meetings.MarkAttendance(r.Context(), caller(r), chi.URLParam(r, "id"), req)
	s.respond(w, r, http.StatusOK, m, err)
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	m, err := s.svc.Meetings.Join(r.Context(), caller(r), chi.URLParam(r, "id"))
	s.respond(w, r, http.StatusOK, m, err)
}

func (s *Server) handleLeave(w http.ResponseWriter, r *http.Request) {
	m, err := s.svc.Meetings.Leave(r.Context(), caller(r), chi.URLParam(r, "id"))
	s.respond(w, r, http.StatusOK, m, err)
}

func (s *Server) handleMakeMotion(w http.ResponseWriter, r *http.Request) {
	var req meeting.MakeMotionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	mo, err := s.svc.Meetings.MakeMotion(r.Context(), caller(r), req)
	s.respond(w, r, http.StatusOK, mo, err)
}

func (s *Server) handleGetMotion(w http.ResponseWriter, r *http.Request) {
	mo, err := s.svc.Meetings.GetMotion(r.Context(), caller(r), chi.URLParam(r, "id"))
	s.respond(w, r, http.StatusOK, mo, err)
}

func (s *Server) handleWithdrawMotion(w http.ResponseWriter, r *http.Request) {
	mo, err := s.svc.Meetings.WithdrawMotion(r.Context(), caller(r), chi.URLParam(r, "id"))
	s.respond(w, r, http.StatusOK, mo, err)
}

func (s *Server) handleBeginVote(w http.ResponseWriter, r *http.Request) {
	var req beginVoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	if err := requireMeetingID(req.MeetingID); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	rec, err := s.svc.Meetings.BeginVote(r.Context(), caller(r), req.MeetingID, req.MotionID)
	s.respond(w, r, http.StatusOK, rec, err)
}

func (s *Server) handleEndVote(w http.ResponseWriter, r *http.Request) {
	var req endVoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	if err := requireMeetingID(req.MeetingID); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	m, err := s.svc.Meetings.EndVote(r.Context(), caller(r), req.MeetingID)
	s.respond(w, r, http.StatusOK, m, err)
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	var req castVoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	if err := requireMeetingID(req.MeetingID); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	m, err := s.svc.Meetings.CastVote(r.Context(), caller(r), req.MeetingID, req.VoteState)
	s.respond(w, r, http.StatusOK, m, err)
}

func (s *Server) handleGetVotingRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := s.svc.Meetings.GetVotingRecord(r.Context(), caller(r), chi.URLParam(r, "id"))
	s.respond(w, r, http.StatusOK, rec, err)
}

func requireMeetingID(id string) error {
	var fields apperror.Fields
	fields.Require("meeting_id", id, "meeting is required")
	return fields.Err()
}
