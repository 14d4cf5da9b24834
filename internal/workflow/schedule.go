package workflow

import (
	"context"
	"strings"
	"sync"

	"github.com/abubakar20-02/Flight-Management-System/internal/gateway"
	"github.com/abubakar20-02/Flight-Management-System/internal/models"
	"github.com/abubakar20-02/Flight-Management-System/internal/validation"
	"github.com/abubakar20-02/Flight-Management-System/pkg/logger"
)

// ScheduleFetched is shown after a successful schedule lookup.
const ScheduleFetched = "Data fetched successfully"

// ScheduleLookup shows the flights a crew member is assigned to. Read only.
type ScheduleLookup struct {
	mu      sync.Mutex
	api     gateway.API
	logger  *logger.Logger
	crewID  string
	rows    []models.Flight
	message string
}

func NewScheduleLookup(api gateway.API, log *logger.Logger) *ScheduleLookup {
	return &ScheduleLookup{api: api, logger: log}
}

// Lookup replaces the schedule with crewID's flights. Any failure empties it.
func (s *ScheduleLookup) Lookup(ctx context.Context, crewID string) ([]models.Flight, error) {
	crewID = strings.TrimSpace(crewID)
	if crewID == "" {
		return nil, &validation.Error{Field: "CrewID", Message: "Crew member ID is required"}
	}

	resp, err := s.api.CrewSchedule(ctx, crewID)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.crewID = crewID
	if err != nil {
		s.rows = nil
		s.message = err.Error()
		if gateway.IsNotFound(err) {
			return nil, nil
		}
		s.logger.Warn("Schedule lookup for %s failed: %v", crewID, err)
		return nil, err
	}

	s.rows = append([]models.Flight(nil), resp.Flights...)
	s.message = ScheduleFetched
	return s.rows, nil
}

func (s *ScheduleLookup) CrewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.crewID
}

func (s *ScheduleLookup) Rows() []models.Flight {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Flight(nil), s.rows...)
}

func (s *ScheduleLookup) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}
