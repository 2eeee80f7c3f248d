package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// jsonIndent matches the human-readable formatting of the store files.
const jsonIndent = "    "

// Paths locates the three store files on disk.
type Paths struct {
	Tickets   string
	Employees string
	Counter   string
}

// Store persists the ticket and employee collections as whole JSON
// documents. Every read loads the full collection and every write rewrites
// the full file in place; there is no partial write and no write-to-temp
// rename, so a crash mid-write can corrupt the file. A process-wide mutex
// serializes read-modify-write cycles, which closes the lost-update race
// between concurrent requests within this process. Writers in other
// processes are not coordinated.
type Store struct {
	mu     sync.Mutex
	paths  Paths
	logger *zap.Logger
}

// New builds a Store over the given files. The collection files are
// foundational configuration: their absence is an operator error, so loads
// terminate the process when a file is missing rather than limping along
// with an empty collection.
func New(paths Paths, logger *zap.Logger) *Store {
	return &Store{paths: paths, logger: logger}
}

// Tickets returns the full ticket collection.
func (s *Store) Tickets() ([]domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadTickets()
}

// Employees returns the full employee collection.
func (s *Store) Employees() ([]domain.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadEmployees()
}

// SaveTickets overwrites the ticket file with the given collection.
func (s *Store) SaveTickets(tickets []domain.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveTickets(tickets)
}

// SaveEmployees overwrites the employee file with the given collection.
func (s *Store) SaveEmployees(employees []domain.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveEmployees(employees)
}

// UpdateTickets runs fn over a fresh snapshot of the ticket collection and
// persists whatever fn returns, all under the store mutex. Returning an
// error from fn abandons the write.
func (s *Store) UpdateTickets(fn func(tickets []domain.Ticket) ([]domain.Ticket, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickets, err := s.loadTickets()
	if err != nil {
		return err
	}
	updated, err := fn(tickets)
	if err != nil {
		return err
	}
	return s.saveTickets(updated)
}

// UpdateEmployees is UpdateTickets for the employee collection.
func (s *Store) UpdateEmployees(fn func(employees []domain.Employee) ([]domain.Employee, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	employees, err := s.loadEmployees()
	if err != nil {
		return err
	}
	updated, err := fn(employees)
	if err != nil {
		return err
	}
	return s.saveEmployees(updated)
}

func (s *Store) loadTickets() ([]domain.Ticket, error) {
	data, err := os.ReadFile(s.paths.Tickets)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Fatal("ticket database file could not be located", zap.String("path", s.paths.Tickets))
		}
		return nil, fmt.Errorf("read ticket file: %w", err)
	}
	var tickets []domain.Ticket
	if err := json.Unmarshal(data, &tickets); err != nil {
		return nil, fmt.Errorf("decode ticket file: %w", err)
	}
	return tickets, nil
}

func (s *Store) saveTickets(tickets []domain.Ticket) error {
	if tickets == nil {
		tickets = []domain.Ticket{}
	}
	data, err := json.MarshalIndent(tickets, "", jsonIndent)
	if err != nil {
		return fmt.Errorf("encode ticket file: %w", err)
	}
	if err := os.WriteFile(s.paths.Tickets, data, 0o644); err != nil {
		return fmt.Errorf("write ticket file: %w", err)
	}
	s.logger.Debug("ticket database file was modified")
	return nil
}

func (s *Store) loadEmployees() ([]domain.Employee, error) {
	data, err := os.ReadFile(s.paths.Employees)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Fatal("employee database file could not be located", zap.String("path", s.paths.Employees))
		}
		return nil, fmt.Errorf("read employee file: %w", err)
	}
	var employees []domain.Employee
	if err := json.Unmarshal(data, &employees); err != nil {
		return nil, fmt.Errorf("decode employee file: %w", err)
	}
	return employees, nil
}

func (s *Store) saveEmployees(employees []domain.Employee) error {
	if employees == nil {
		employees = []domain.Employee{}
	}
	data, err := json.MarshalIndent(employees, "", jsonIndent)
	if err != nil {
		return fmt.Errorf("encode employee file: %w", err)
	}
	if err := os.WriteFile(s.paths.Employees, data, 0o644); err != nil {
		return fmt.Errorf("write employee file: %w", err)
	}
	s.logger.Debug("employee database file was modified")
	return nil
}

type counterFile struct {
	LastSequence int `json:"last_sequence"`
}

// NextTicketNumber allocates the next human-readable ticket identifier,
// TKT-<year>-<sequence zero-padded to 4 digits>. The sequence comes from a
// monotonic counter persisted next to the ticket file, so concurrent
// creations get distinct numbers and numbers are never reused. On first run
// the counter is seeded from the current collection size.
func (s *Store) NextTicketNumber(now time.Time) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counter, err := s.loadCounter()
	if err != nil {
		return "", err
	}
	counter.LastSequence++
	if err := s.saveCounter(counter); err != nil {
		return "", err
	}
	return fmt.Sprintf("TKT-%d-%04d", now.Year(), counter.LastSequence), nil
}

func (s *Store) loadCounter() (counterFile, error) {
	data, err := os.ReadFile(s.paths.Counter)
	if err != nil {
		if os.IsNotExist(err) {
			tickets, loadErr := s.loadTickets()
			if loadErr != nil {
				return counterFile{}, loadErr
			}
			return counterFile{LastSequence: len(tickets)}, nil
		}
		return counterFile{}, fmt.Errorf("read counter file: %w", err)
	}
	var counter counterFile
	if err := json.Unmarshal(data, &counter); err != nil {
		return counterFile{}, fmt.Errorf("decode counter file: %w", err)
	}
	return counter, nil
}

func (s *Store) saveCounter(counter counterFile) error {
	data, err := json.MarshalIndent(counter, "", jsonIndent)
	if err != nil {
		return fmt.Errorf("encode counter file: %w", err)
	}
	if err := os.WriteFile(s.paths.Counter, data, 0o644); err != nil {
		return fmt.Errorf("write counter file: %w", err)
	}
	return nil
}
