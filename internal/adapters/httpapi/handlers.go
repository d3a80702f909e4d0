package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mikey/inbox-priority/internal/core"
	"github.com/mikey/inbox-priority/internal/vip"
)

type senderDTO struct {
	Address     string `json:"address"`
	DisplayName string `json:"display_name,omitempty"`
}

type messageDTO struct {
	ID           string    `json:"id"`
	Source       string    `json:"source"`
	Sender       senderDTO `json:"sender"`
	Subject      string    `json:"subject"`
	Body         string    `json:"body"`
	Timestamp    time.Time `json:"timestamp"`
	Channel      string    `json:"channel,omitempty"`
	Read         bool      `json:"read"`
	PriorityHint int       `json:"priority_hint,omitempty"`
}

type contactDTO struct {
	ID                string  `json:"id,omitempty"`
	Address           string  `json:"address"`
	DisplayName       string  `json:"display_name,omitempty"`
	Importance        int     `json:"importance"`
	Relationship      string  `json:"relationship,omitempty"`
	Department        string  `json:"department,omitempty"`
	Notes             string  `json:"notes,omitempty"`
	LastContact       string  `json:"last_contact,omitempty"`
	ResponseTimeHours float64 `json:"response_time_hours,omitempty"`
	InteractionScore  int     `json:"interaction_score,omitempty"`
}

func (d messageDTO) toMessage() core.Message {
	source := core.SourceEmail
	if d.Source == string(core.SourceChat) {
		source = core.SourceChat
	}
	return core.Message{
		ID:     d.ID,
		Source: source,
		Sender: core.Sender{
			Address:     d.Sender.Address,
			DisplayName: d.Sender.DisplayName,
		},
		Subject:      d.Subject,
		Body:         d.Body,
		Timestamp:    d.Timestamp,
		Channel:      d.Channel,
		Read:         d.Read,
		PriorityHint: d.PriorityHint,
	}
}

func (d contactDTO) toContact() core.VIPContact {
	contact := core.VIPContact{
		ID:                d.ID,
		Address:           d.Address,
		DisplayName:       d.DisplayName,
		Importance:        d.Importance,
		Relationship:      core.Relationship(d.Relationship),
		Department:        d.Department,
		Notes:             d.Notes,
		ResponseTimeHours: d.ResponseTimeHours,
		InteractionScore:  d.InteractionScore,
	}
	if ts, err := time.Parse(time.RFC3339, d.LastContact); err == nil {
		contact.LastContact = ts
	}
	return contact
}

func contactToDTO(c core.VIPContact) contactDTO {
	dto := contactDTO{
		ID:                c.ID,
		Address:           c.Address,
		DisplayName:       c.DisplayName,
		Importance:        c.Importance,
		Relationship:      string(c.Relationship),
		Department:        c.Department,
		Notes:             c.Notes,
		ResponseTimeHours: c.ResponseTimeHours,
		InteractionScore:  c.InteractionScore,
	}
	if !c.LastContact.IsZero() {
		dto.LastContact = c.LastContact.Format(time.RFC3339)
	}
	return dto
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req messageDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	msg := req.toMessage()
	score := s.svc.ScoreItem(msg)

	writeJSON(w, http.StatusOK, map[string]any{
		"score":      score.Score,
		"confidence": score.Confidence,
		"label":      s.svc.PriorityLabel(score.Score),
		"factors": map[string]int{
			"sender":     score.Factors.Sender,
			"keywords":   score.Factors.Keywords,
			"urgency":    score.Factors.Urgency,
			"vip":        score.Factors.VIP,
			"engagement": score.Factors.Engagement,
		},
		"explanation": score.Explanation,
	})
}

func (s *Server) handleDigest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Messages []messageDTO `json:"messages"`
		Filters  struct {
			VIP    bool `json:"vip"`
			Urgent bool `json:"urgent"`
			Unread bool `json:"unread"`
		} `json:"filters"`
		Sort string `json:"sort"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	msgs := make([]core.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		msgs = append(msgs, m.toMessage())
	}

	order := core.SortByTime
	switch core.SortOrder(req.Sort) {
	case core.SortByPriority, core.SortBySender:
		order = core.SortOrder(req.Sort)
	}

	groups := s.svc.OrganizeDigest(msgs, core.Filters{
		VIPOnly:    req.Filters.VIP,
		UrgentOnly: req.Filters.Urgent,
		UnreadOnly: req.Filters.Unread,
	}, order)

	type itemDTO struct {
		Message        messageDTO `json:"message"`
		Score          int        `json:"score"`
		Label          string     `json:"label"`
		Category       string     `json:"category"`
		IsVIP          bool       `json:"is_vip"`
		ActionRequired bool       `json:"action_required"`
		Explanation    string     `json:"explanation"`
	}
	type groupDTO struct {
		Label string    `json:"label"`
		Items []itemDTO `json:"items"`
	}

	out := make([]groupDTO, 0, len(groups))
	for _, g := range groups {
		items := make([]itemDTO, 0, len(g.Items))
		for _, item := range g.Items {
			items = append(items, itemDTO{
				Message: messageDTO{
					ID:        item.Message.ID,
					Source:    string(item.Message.Source),
					Sender:    senderDTO{Address: item.Message.Sender.Address, DisplayName: item.Message.Sender.DisplayName},
					Subject:   item.Message.Subject,
					Timestamp: item.Message.Timestamp,
					Channel:   item.Message.Channel,
					Read:      item.Message.Read,
				},
				Score:          item.Priority.Score,
				Label:          string(core.TierForScore(item.Priority.Score)),
				Category:       string(item.Category),
				IsVIP:          item.IsVIP,
				ActionRequired: item.ActionRequired,
				Explanation:    item.Priority.Explanation,
			})
		}
		out = append(out, groupDTO{Label: g.Label, Items: items})
	}

	writeJSON(w, http.StatusOK, map[string]any{"groups": out})
}

func (s *Server) handleListVIP(w http.ResponseWriter, r *http.Request) {
	contacts := s.svc.ListVIPContacts()
	out := make([]contactDTO, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, contactToDTO(c))
	}
	writeJSON(w, http.StatusOK, map[string]any{"contacts": out})
}

func (s *Server) handleUpsertVIP(w http.ResponseWriter, r *http.Request) {
	var req contactDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Address == "" && req.DisplayName == "" {
		writeError(w, http.StatusBadRequest, "address or display_name required")
		return
	}

	stored := s.svc.UpsertVIPContact(req.toContact())
	writeJSON(w, http.StatusOK, contactToDTO(stored))
}

func (s *Server) handleRemoveVIP(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "contactID")
	if err := s.svc.RemoveVIPContact(id); err != nil {
		if errors.Is(err, vip.ErrNotFound) {
			writeError(w, http.StatusNotFound, "contact not found")
			return
		}
		s.logger.Error("Failed to remove VIP contact", zap.String("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "remove failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (s *Server) handleDetectVIP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Senders []string `json:"senders"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	candidates := s.svc.DetectVIPCandidates(req.Senders)
	if candidates == nil {
		candidates = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"candidates": candidates})
}

func (s *Server) handleUpdateBehavior(w http.ResponseWriter, r *http.Request) {
	contact := chi.URLParam(r, "contact")

	var req struct {
		Replies                int     `json:"replies"`
		Opens                  int     `json:"opens"`
		AverageResponseSeconds float64 `json:"average_response_seconds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	merged := s.svc.UpdateBehaviorData(contact, core.BehaviorRecord{
		Replies:                req.Replies,
		Opens:                  req.Opens,
		AverageResponseSeconds: req.AverageResponseSeconds,
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"replies":                  merged.Replies,
		"opens":                    merged.Opens,
		"average_response_seconds": merged.AverageResponseSeconds,
	})
}
