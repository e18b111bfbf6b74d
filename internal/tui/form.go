package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/FinalFox-Ryan/Subscription-Manager/internal/model"
	"github.com/FinalFox-Ryan/Subscription-Manager/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

type formMode int

const (
	formAdd formMode = iota
	formEdit
	formDelete
)

// entryForm holds the raw string values bound to the huh inputs. Parsing and
// validation happen in the field validators and in subscriptionFromForm.
type entryForm struct {
	name      string
	amount    string
	cycle     string
	start     string
	end       string
	color     string
	autoRenew bool
	confirm   bool
}

const formDateLayout = "2006-01-02"

func validDate(s string) error {
	if _, err := time.Parse(formDateLayout, s); err != nil {
		return fmt.Errorf("expected YYYY-MM-DD")
	}
	return nil
}

func validOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return validDate(s)
}

func validAmount(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("expected a number")
	}
	if v < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

// newEntryForm builds the add/edit form over the given values.
func newEntryForm(vals *entryForm) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&vals.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name must not be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Amount per cycle").
				Value(&vals.amount).
				Validate(validAmount),
			huh.NewSelect[string]().
				Title("Billing cycle").
				Options(
					huh.NewOption("monthly", string(model.CycleMonthly)),
					huh.NewOption("yearly", string(model.CycleYearly)),
				).
				Value(&vals.cycle),
			huh.NewInput().
				Title("Start date").
				Placeholder(formDateLayout).
				Value(&vals.start).
				Validate(validDate),
			huh.NewInput().
				Title("End date (blank for open-ended)").
				Placeholder(formDateLayout).
				Value(&vals.end).
				Validate(validOptionalDate),
			huh.NewInput().
				Title("Color (hex, blank for automatic)").
				Placeholder("#4385BE").
				Value(&vals.color),
			huh.NewConfirm().
				Title("Auto-renew?").
				Value(&vals.autoRenew),
		),
	)
}

// newDeleteForm builds the delete confirmation.
func newDeleteForm(name string, vals *entryForm) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q?", name)).
				Affirmative("Delete").
				Negative("Keep").
				Value(&vals.confirm),
		),
	)
}

// subscriptionFromForm converts validated form values into a record,
// preserving identity fields of base (id, type, sort order) on edit.
func subscriptionFromForm(vals entryForm, base model.Subscription) (model.Subscription, error) {
	sub := base
	sub.Name = strings.TrimSpace(vals.name)
	sub.Color = strings.TrimSpace(vals.color)
	sub.Cycle = model.Cycle(vals.cycle)
	sub.AutoRenew = vals.autoRenew
	sub.Type = model.TypeService

	amount, err := strconv.ParseFloat(strings.TrimSpace(vals.amount), 64)
	if err != nil {
		return model.Subscription{}, fmt.Errorf("invalid amount: %w", err)
	}
	sub.Amount = amount

	start, err := time.Parse(formDateLayout, strings.TrimSpace(vals.start))
	if err != nil {
		return model.Subscription{}, fmt.Errorf("invalid start date: %w", err)
	}
	sub.StartDate = start

	sub.EndDate = nil
	if e := strings.TrimSpace(vals.end); e != "" {
		end, err := time.Parse(formDateLayout, e)
		if err != nil {
			return model.Subscription{}, fmt.Errorf("invalid end date: %w", err)
		}
		if end.Before(start) {
			return model.Subscription{}, fmt.Errorf("end date is before start date")
		}
		sub.EndDate = &end
	}

	return sub, nil
}

func (a App) openAddForm() (tea.Model, tea.Cmd) {
	a.formMode = formAdd
	a.formTarget = model.Subscription{}
	a.formVals = &entryForm{
		cycle:     string(model.CycleMonthly),
		start:     a.today.Format(formDateLayout),
		autoRenew: true,
	}
	a.form = newEntryForm(a.formVals)
	if a.width > 0 {
		a.form = a.form.WithWidth(a.width).WithHeight(a.height)
	}
	return a, a.form.Init()
}

func (a App) openEditForm(sub model.Subscription) (tea.Model, tea.Cmd) {
	a.formMode = formEdit
	a.formTarget = sub

	end := ""
	if sub.EndDate != nil {
		end = sub.EndDate.Format(formDateLayout)
	}
	a.formVals = &entryForm{
		name:      sub.Name,
		amount:    strconv.FormatFloat(sub.Amount, 'f', -1, 64),
		cycle:     string(sub.Cycle),
		start:     sub.StartDate.Format(formDateLayout),
		end:       end,
		color:     sub.Color,
		autoRenew: sub.AutoRenew,
	}
	a.form = newEntryForm(a.formVals)
	if a.width > 0 {
		a.form = a.form.WithWidth(a.width).WithHeight(a.height)
	}
	return a, a.form.Init()
}

func (a App) openDeleteForm(sub model.Subscription) (tea.Model, tea.Cmd) {
	a.formMode = formDelete
	a.formTarget = sub
	a.formVals = &entryForm{}
	a.form = newDeleteForm(sub.Name, a.formVals)
	if a.width > 0 {
		a.form = a.form.WithWidth(a.width).WithHeight(a.height)
	}
	return a, a.form.Init()
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	if a.form.State == huh.StateCompleted {
		mode := a.formMode
		vals := *a.formVals
		target := a.formTarget
		a.form = nil
		a.formVals = nil

		switch mode {
		case formAdd, formEdit:
			sub, err := subscriptionFromForm(vals, target)
			if err != nil {
				a.statusMsg = err.Error()
				return a, nil
			}
			if mode == formAdd {
				return a, insertCmd(a.dbPath, sub)
			}
			return a, updateCmd(a.dbPath, sub)

		case formDelete:
			if vals.confirm {
				return a, deleteCmd(a.dbPath, target.ID)
			}
			return a, nil
		}
		return a, nil
	}

	if a.form.State == huh.StateAborted {
		a.form = nil
		a.formVals = nil
		return a, nil
	}

	return a, cmd
}

func (a App) viewForm() string {
	t := theme.Active

	title := "Add subscription"
	switch a.formMode {
	case formEdit:
		title = "Edit " + a.formTarget.Name
	case formDelete:
		title = "Delete " + a.formTarget.Name
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Background).
		Bold(true)

	body := titleStyle.Render("◈ "+title) + "\n\n" + a.form.View()

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, body,
		lipgloss.WithWhitespaceBackground(t.Background))
}
