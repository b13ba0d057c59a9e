package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"parkhive/internal/db"
	"parkhive/internal/entities"
	"parkhive/internal/service"
)

// Shell is the terminal stand-in for the app's screens. It owns no booking
// rules: every command is a thin adapter over the services, the same way the
// screens dispatch into the store.
type Shell struct {
	auth         service.AuthService
	reservations *service.ReservationService
	cancelFlow   *service.CancelFlow
	in           *bufio.Scanner
	out          io.Writer
	log          *logrus.Logger
}

func NewShell(
	auth service.AuthService,
	reservations *service.ReservationService,
	cancelFlow *service.CancelFlow,
	in io.Reader,
	out io.Writer,
	log *logrus.Logger,
) *Shell {
	return &Shell{
		auth:         auth,
		reservations: reservations,
		cancelFlow:   cancelFlow,
		in:           bufio.NewScanner(in),
		out:          out,
		log:          log,
	}
}

// Run reads commands until EOF or quit.
func (sh *Shell) Run() {
	fmt.Fprintln(sh.out, "parkhive. type 'help' for commands")
	for {
		fmt.Fprint(sh.out, "> ")
		if !sh.in.Scan() {
			return
		}
		line := strings.TrimSpace(sh.in.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := strings.ToLower(fields[0]), fields[1:]

		// Any typed command is an interaction as far as the pending
		// cancel confirmation is concerned.
		if _, open := sh.cancelFlow.SlotID(); open && cmd != "cancel" {
			sh.cancelFlow.Touch()
		}

		switch cmd {
		case "help":
			sh.printHelp()
		case "login":
			sh.login(args)
		case "logout":
			sh.logout()
		case "register":
			sh.register(args)
		case "profile":
			sh.profile(args)
		case "sections":
			sh.sections()
		case "slots":
			sh.slots(args)
		case "stats":
			sh.stats()
		case "book":
			sh.book(args)
		case "mybookings":
			sh.myBookings()
		case "cancel":
			sh.cancel(args)
		case "quit", "exit":
			return
		default:
			fmt.Fprintf(sh.out, "unknown command %q, try 'help'\n", cmd)
		}
	}
}

func (sh *Shell) printHelp() {
	fmt.Fprint(sh.out, `commands:
  login <employeeID> <password>     sign in
  register <employeeID> <password>  create a local account
  logout                            sign out and reset the garage
  profile [name|email|phone <v>]    show or update profile
  sections                          list sections
  slots <section>                   show a section's slot grid
  stats                             per-section availability
  book <slotID> [vehicleNumber]     reserve a slot
  mybookings                        slots you hold
  cancel <slotID>|confirm|keep      cancel flow
  quit
`)
}

func (sh *Shell) login(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(sh.out, "usage: login <employeeID> <password>")
		return
	}
	session, err := sh.auth.Login(args[0], args[1])
	if err != nil {
		fmt.Fprintf(sh.out, "login failed: %v\n", err)
		return
	}
	fmt.Fprintf(sh.out, "welcome %s (session expires %s)\n",
		session.CustomerID, session.ExpiresAt.Format(time.RFC3339))
}

func (sh *Shell) logout() {
	sh.cancelFlow.Dismiss()
	sh.auth.Logout()
	fmt.Fprintln(sh.out, "logged out")
}

func (sh *Shell) register(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(sh.out, "usage: register <employeeID> <password>")
		return
	}
	err := sh.auth.Register(entities.RegisterRequest{EmployeeID: args[0], Password: args[1]})
	if err != nil {
		fmt.Fprintf(sh.out, "registration failed: %v\n", err)
		return
	}
	fmt.Fprintln(sh.out, "account created, you can log in now")
}

func (sh *Shell) profile(args []string) {
	if len(args) == 0 {
		p, err := sh.auth.Profile()
		if err != nil {
			fmt.Fprintf(sh.out, "%v\n", err)
			return
		}
		fmt.Fprintf(sh.out, "customer: %s\n  name:  %s\n  email: %s\n  phone: %s\n",
			p.CustomerID, orDash(p.Name), orDash(p.Email), orDash(p.Phone))
		return
	}
	if len(args) != 2 {
		fmt.Fprintln(sh.out, "usage: profile [name|email|phone <value>]")
		return
	}
	req := entities.UpdateProfileRequest{}
	switch strings.ToLower(args[0]) {
	case "name":
		req.Name = &args[1]
	case "email":
		req.Email = &args[1]
	case "phone":
		req.Phone = &args[1]
	default:
		fmt.Fprintln(sh.out, "usage: profile [name|email|phone <value>]")
		return
	}
	p, err := sh.auth.UpdateProfile(req)
	if err != nil {
		fmt.Fprintf(sh.out, "update failed: %v\n", err)
		return
	}
	fmt.Fprintf(sh.out, "profile updated for %s\n", p.CustomerID)
}

func (sh *Shell) sections() {
	for _, stats := range sh.reservations.Stats() {
		if stats.Section == "" {
			continue
		}
		fmt.Fprintf(sh.out, "%s: %d slots, %d available\n",
			stats.Section, stats.Total, stats.Available)
	}
}

func (sh *Shell) slots(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(sh.out, "usage: slots <section>")
		return
	}
	section := db.Section(strings.ToUpper(args[0]))
	slots, err := sh.reservations.SlotsBySection(section)
	if err != nil {
		fmt.Fprintf(sh.out, "%v\n", err)
		return
	}
	for _, slot := range slots {
		marker := "[ ]"
		if slot.Booked() {
			marker = "[x]"
		}
		fmt.Fprintf(sh.out, "%s %s\n", marker, slot.ID)
	}
}

func (sh *Shell) stats() {
	for _, stats := range sh.reservations.Stats() {
		label := stats.Section
		if label == "" {
			label = "total"
		}
		fmt.Fprintf(sh.out, "%-5s total=%d available=%d booked=%d\n",
			label, stats.Total, stats.Available, stats.Booked)
	}
}

func (sh *Shell) book(args []string) {
	userID, ok := sh.auth.CurrentUserID()
	if !ok {
		fmt.Fprintln(sh.out, "log in first")
		return
	}
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(sh.out, "usage: book <slotID> [vehicleNumber]")
		return
	}
	req := entities.BookRequest{
		SlotID:   strings.ToUpper(args[0]),
		UserID:   userID,
		BookedAt: time.Now().UTC(),
	}
	if len(args) == 2 {
		req.VehicleNumber = args[1]
	}
	result, err := sh.reservations.Book(req)
	if err != nil {
		fmt.Fprintf(sh.out, "booking rejected: %v\n", err)
		return
	}
	switch result.Outcome {
	case entities.BookOK:
		fmt.Fprintf(sh.out, "booked %s (receipt %s)\n", result.Receipt.SlotID, result.Receipt.Code)
	case entities.BookAlreadyBooked:
		fmt.Fprintf(sh.out, "slot %s is already taken\n", req.SlotID)
	case entities.BookNotFound:
		fmt.Fprintf(sh.out, "no such slot %s\n", req.SlotID)
	}
}

func (sh *Shell) myBookings() {
	userID, ok := sh.auth.CurrentUserID()
	if !ok {
		fmt.Fprintln(sh.out, "log in first")
		return
	}
	slots := sh.reservations.BookedSlots(userID)
	if len(slots) == 0 {
		fmt.Fprintln(sh.out, "no active bookings")
		return
	}
	for _, slot := range slots {
		line := fmt.Sprintf("%s booked at %s", slot.ID, slot.BookedAt)
		if slot.VehicleNumber != "" {
			line += " vehicle " + slot.VehicleNumber
		}
		fmt.Fprintln(sh.out, line)
	}
}

func (sh *Shell) cancel(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(sh.out, "usage: cancel <slotID> | cancel confirm | cancel keep")
		return
	}
	switch strings.ToLower(args[0]) {
	case "confirm":
		result := sh.cancelFlow.Confirm()
		switch result.Outcome {
		case entities.CancelOK:
			fmt.Fprintf(sh.out, "cancelled %s\n", result.SlotID)
		case entities.CancelAlreadyAvailable:
			fmt.Fprintf(sh.out, "slot %s was not booked\n", result.SlotID)
		default:
			fmt.Fprintln(sh.out, "nothing to confirm")
		}
	case "keep":
		sh.cancelFlow.Dismiss()
		fmt.Fprintln(sh.out, "keeping the booking")
	default:
		slotID := strings.ToUpper(args[0])
		sh.cancelFlow.Open(slotID)
		fmt.Fprintf(sh.out, "cancel booking for %s? 'cancel confirm' or 'cancel keep'\n", slotID)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
