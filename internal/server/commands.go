package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/wheelibin/shutters/internal/constants"
	"github.com/wheelibin/shutters/internal/models"
	"github.com/wheelibin/shutters/internal/repos"
	"github.com/wheelibin/shutters/internal/rule"
	"github.com/wheelibin/shutters/internal/shutters"
)

var errBadRequest = errors.New("bad request")

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	command := chi.URLParam(r, "command")

	var req models.CommandRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.renderError(w, fmt.Errorf("%w: %s", errBadRequest, err))
			return
		}
	}

	switch command {
	case constants.CommandGetConfig:
		s.getConfig(w)

	case constants.CommandAddSchedule:
		if err := s.checkRule(req.EncodedRule); err != nil {
			s.renderError(w, err)
			return
		}
		id, err := s.rules.Add(req.EncodedRule)
		if err != nil {
			s.renderError(w, err)
			return
		}
		s.logger.Info("schedule added", "id", id)
		s.publish(constants.ChangeTypeAdded, id)
		renderJson(w, http.StatusOK, models.CommandResult{Status: constants.StatusOK, ID: id, Message: "Schedule added"})

	case constants.CommandEditSchedule:
		if err := s.checkRule(req.EncodedRule); err != nil {
			s.renderError(w, err)
			return
		}
		current, err := s.rules.Get(req.ID)
		if err != nil {
			s.renderError(w, err)
			return
		}
		if rule.FormatConfigLine(current) == rule.FormatConfigLine(req.EncodedRule) {
			s.logger.Debug("schedule unchanged", "id", req.ID)
			renderJson(w, http.StatusOK, models.CommandResult{Status: constants.StatusOK, ID: req.ID, Message: "Schedule unchanged"})
			return
		}
		if err := s.rules.Update(req.ID, req.EncodedRule); err != nil {
			s.renderError(w, err)
			return
		}
		s.logger.Info("schedule edited", "id", req.ID)
		s.publish(constants.ChangeTypeEdited, req.ID)
		renderJson(w, http.StatusOK, models.CommandResult{Status: constants.StatusOK, ID: req.ID, Message: "Schedule updated"})

	case constants.CommandDeleteSchedule:
		if err := s.rules.Delete(req.ID); err != nil {
			s.renderError(w, err)
			return
		}
		s.logger.Info("schedule deleted", "id", req.ID)
		s.publish(constants.ChangeTypeDeleted, req.ID)
		renderJson(w, http.StatusOK, models.CommandResult{Status: constants.StatusOK, ID: req.ID, Message: "Schedule deleted"})

	case constants.CommandUp, constants.CommandDown, constants.CommandStop:
		registry, err := s.registry()
		if err != nil {
			s.renderError(w, err)
			return
		}
		if _, ok := registry.ShutterName(req.Shutter); !ok {
			s.renderError(w, fmt.Errorf("%w: unknown shutter %q", errBadRequest, req.Shutter))
			return
		}
		if err := s.commander.Command(r.Context(), req.Shutter, command); err != nil {
			s.renderError(w, err)
			return
		}
		renderJson(w, http.StatusOK, models.CommandResult{Status: constants.StatusOK, Message: fmt.Sprintf("Sent %s to %s", command, req.Shutter)})

	default:
		s.renderError(w, fmt.Errorf("%w: unknown command %q", errBadRequest, command))
	}
}

func (s *Server) getConfig(w http.ResponseWriter) {
	schedule, err := s.rules.All()
	if err != nil {
		s.renderError(w, err)
		return
	}
	all, err := s.shutters.All()
	if err != nil {
		s.renderError(w, err)
		return
	}

	renderJson(w, http.StatusOK, models.ControllerConfig{
		Latitude:  s.latitude,
		Longitude: s.longitude,
		Shutters: lo.SliceToMap(all, func(sh models.Shutter) (string, string) {
			return sh.ID, sh.Name
		}),
		ShutterDurations: lo.SliceToMap(all, func(sh models.Shutter) (string, int) {
			return sh.ID, sh.Duration
		}),
		Schedule: schedule,
	})
}

// checkRule rejects what the config line format or the scheduler can't cope
// with. Targets must be known shutters.
func (s *Server) checkRule(encoded models.EncodedRule) error {
	if encoded.Active != constants.RuleActive && encoded.Active != constants.RulePaused {
		return fmt.Errorf("%w: active must be %q or %q", errBadRequest, constants.RuleActive, constants.RulePaused)
	}
	line := rule.FormatConfigLine(encoded)
	if strings.ContainsAny(line, "\r\n") || strings.Count(line, ",") != 6 {
		return fmt.Errorf("%w: values must not contain commas or new lines", errBadRequest)
	}
	if err := rule.Decode("", encoded).Validate(); err != nil {
		return fmt.Errorf("%w: %s", errBadRequest, err)
	}

	registry, err := s.registry()
	if err != nil {
		return err
	}
	if unknown := registry.Unknown(encoded.ShutterIds); len(unknown) > 0 {
		return fmt.Errorf("%w: unknown shutters %s", errBadRequest, strings.Join(unknown, ", "))
	}
	return nil
}

func (s *Server) registry() (*shutters.Registry, error) {
	all, err := s.shutters.All()
	if err != nil {
		return nil, err
	}
	return shutters.NewRegistry(lo.SliceToMap(all, func(sh models.Shutter) (string, string) {
		return sh.ID, sh.Name
	})), nil
}

func (s *Server) renderError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, repos.ErrNotFound):
		status = http.StatusNotFound
	default:
		s.logger.Error("command failed", "err", err)
	}
	renderJson(w, status, models.CommandResult{Status: constants.StatusError, Message: err.Error()})
}

func renderJson(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func newEventID() string {
	return uuid.NewString()
}
