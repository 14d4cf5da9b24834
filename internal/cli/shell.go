package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/abubakar20-02/Flight-Management-System/internal/identity"
	"github.com/abubakar20-02/Flight-Management-System/internal/models"
	"github.com/abubakar20-02/Flight-Management-System/internal/session"
	"github.com/abubakar20-02/Flight-Management-System/internal/workflow"
)

// errQuit ends the shell loop.
var errQuit = errors.New("quit")

type command struct {
	name  string
	help  string
	roles []identity.Role
	run   func(ctx context.Context) error
}

// Shell is the interactive client. Each screen of the web client is a command.
type Shell struct {
	app          *App
	sc           *bufio.Scanner
	out          io.Writer
	readPassword func(prompt string) (string, error)
	commands     []command

	booking *workflow.BookingWorkflow
	flights *workflow.FlightAdminWorkflow
	forms   map[string]interface{} // command name -> *workflow.CreateWorkflow[T]
}

func NewShell(app *App, in io.Reader, out io.Writer) *Shell {
	s := &Shell{
		app: app,
		sc:  bufio.NewScanner(in),
		out: out,
	}
	s.readPassword = s.passwordReader(in)
	s.commands = s.commandTable()
	return s
}

func (s *Shell) commandTable() []command {
	anonymous := []identity.Role{identity.RoleAnonymous}
	traveler := []identity.Role{identity.RoleTraveler}
	admin := []identity.Role{identity.RoleAdmin}

	return []command{
		{"login", "sign in", anonymous, s.login},
		{"signup", "create a traveler account", anonymous, s.signup},
		{"browse", "search flights by origin and destination", nil, s.browse},
		{"select", "select a flight from the last search", nil, s.selectFlight},
		{"book", "book the selected flight", traveler, s.book},
		{"bookings", "list your booked flights", traveler, s.listBookings},
		{"add flight", "schedule a flight", admin, s.addFlight},
		{"add plane", "register an aircraft", admin, s.addPlane},
		{"add pilot", "make a staff member a pilot", admin, s.addPilot},
		{"add staff", "register an employee", admin, s.addStaff},
		{"add city", "register an intercity stop", admin, s.addCity},
		{"assign crew", "put a staff member on a flight", admin, s.assignCrew},
		{"add flight path", "add a city to a flight's route", admin, s.addFlightPath},
		{"remove flight", "search for and delete a flight", admin, s.removeFlight},
		{"schedule", "show a crew member's flights", admin, s.schedule},
		{"whoami", "show the current session", nil, s.whoami},
		{"logout", "sign out", []identity.Role{identity.RoleTraveler, identity.RoleAdmin}, s.logout},
		{"help", "list available commands", nil, s.help},
		{"exit", "leave the shell", nil, func(context.Context) error { return errQuit }},
	}
}

// Run reads commands until exit or end of input.
func (s *Shell) Run(ctx context.Context) error {
	s.println("Welcome to the Flight Management System!")
	s.land(s.app.Router.Enter())
	s.help(ctx)

	for {
		line, ok := s.prompt("\n> ")
		if !ok {
			return nil
		}
		if line == "" {
			continue
		}

		cmd, found := s.lookup(line)
		if !found {
			s.println("Unknown command. Type 'help' to see the available commands.")
			continue
		}

		if len(cmd.roles) > 0 {
			if _, err := s.app.Router.Require(cmd.roles...); err != nil {
				s.printf("Error: %v\n", err)
				continue
			}
		}

		if err := cmd.run(ctx); err != nil {
			if errors.Is(err, errQuit) {
				s.println("Goodbye!")
				return nil
			}
			s.printf("Error: %v\n", err)
		}
	}
}

func (s *Shell) lookup(line string) (command, bool) {
	line = strings.ToLower(strings.Join(strings.Fields(line), " "))
	for _, cmd := range s.commands {
		if cmd.name == line {
			return cmd, true
		}
	}
	return command{}, false
}

func (s *Shell) available(cmd command) bool {
	if len(cmd.roles) == 0 {
		return true
	}
	_, err := s.app.Router.Require(cmd.roles...)
	return err == nil
}

func (s *Shell) help(context.Context) error {
	s.println("Available commands:")
	for _, cmd := range s.commands {
		if s.available(cmd) {
			s.printf("  %-16s %s\n", cmd.name, cmd.help)
		}
	}
	return nil
}

func (s *Shell) land(t session.Transition) {
	switch t.Landing {
	case session.LandingAdmin:
		s.println("Signed in as administrator. Staff dashboard.")
	case session.LandingTraveler:
		id, _ := t.To.PassengerID()
		s.printf("Signed in as %s. Traveler dashboard.\n", id)
	default:
		s.println("Not signed in. Use 'login' or 'signup', or 'browse' flights.")
	}
}

// Session commands

// redirect lands a live session on its dashboard instead of the entry forms.
func (s *Shell) redirect() bool {
	t := s.app.Router.Enter()
	if !t.Redirected() {
		return false
	}
	s.land(t)
	return true
}

func (s *Shell) login(ctx context.Context) error {
	if s.redirect() {
		return nil
	}
	username, ok := s.prompt("Username: ")
	if !ok {
		return io.EOF
	}
	password, err := s.readPassword("Password: ")
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	t, err := s.app.Router.Login(ctx, models.Credentials{Username: username, Password: password})
	if err != nil {
		return err
	}
	s.println(t.Message)
	s.land(t)
	return nil
}

func (s *Shell) signup(ctx context.Context) error {
	if s.redirect() {
		return nil
	}
	var traveler models.Traveler
	if !s.fillForm(&traveler) {
		return io.EOF
	}

	t, err := s.app.Router.Signup(ctx, traveler)
	if err != nil {
		return err
	}
	s.println(t.Message)
	s.land(t)
	return nil
}

func (s *Shell) logout(ctx context.Context) error {
	t, err := s.app.Router.Logout(ctx)
	s.booking = nil
	s.flights = nil
	s.forms = nil
	s.println(t.Message)
	s.land(t)
	return err
}

func (s *Shell) whoami(context.Context) error {
	current := s.app.Router.Current()
	switch current.Role() {
	case identity.RoleAnonymous:
		s.println("anonymous")
	case identity.RoleAdmin:
		s.printf("admin (until %s)\n", s.app.Store.ExpiresAt().Format("2006-01-02 15:04"))
	default:
		id, _ := current.PassengerID()
		s.printf("traveler %s (until %s)\n", id, s.app.Store.ExpiresAt().Format("2006-01-02 15:04"))
	}
	return nil
}

// Input helpers

func (s *Shell) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.sc.Text()), true
}

// passwordReader masks input on a terminal and falls back to plain lines otherwise.
func (s *Shell) passwordReader(in io.Reader) func(string) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return func(label string) (string, error) {
			fmt.Fprint(s.out, label)
			b, err := term.ReadPassword(int(f.Fd()))
			fmt.Fprintln(s.out)
			if err != nil {
				return "", err
			}
			return strings.TrimSpace(string(b)), nil
		}
	}
	return func(label string) (string, error) {
		v, ok := s.prompt(label)
		if !ok {
			return "", io.EOF
		}
		return v, nil
	}
}

func (s *Shell) println(a ...interface{}) { fmt.Fprintln(s.out, a...) }

func (s *Shell) printf(format string, a ...interface{}) { fmt.Fprintf(s.out, format, a...) }
