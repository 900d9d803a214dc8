package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Joseda-hg/tasktrack/internal/model"
	"github.com/Joseda-hg/tasktrack/internal/tasks"
	goerrors "github.com/go-errors/errors"
	"github.com/jesseduffield/gocui"
)

const (
	viewHeader    = "header"
	viewFooter    = "footer"
	viewOpen      = "open"
	viewCompleted = "completed"
	viewDetail    = "detail"
	viewForm      = "form"
	viewHelp      = "help"
)

// Service is the task lifecycle the terminal UI drives.
type Service interface {
	Today() model.Date
	ListFiltered(ctx context.Context, filter model.Filter) ([]model.Task, error)
	Create(ctx context.Context, input tasks.TaskInput) (model.Task, error)
	Edit(ctx context.Context, id int64, input tasks.TaskInput) (model.Task, error)
	MarkComplete(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	DeleteCompleted(ctx context.Context) (int64, error)
}

type UI struct {
	ctx context.Context
	svc Service
	log *slog.Logger
	gui *gocui.Gui

	filter model.Filter
	today  model.Date

	open      []model.Task
	completed []model.Task

	selectedOpen      int
	selectedCompleted int
	focus             string

	form       *formState
	formEditor *formEditor
	helpActive bool
	status     string
}

type formEditor struct {
	ui *UI
}

// Run blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, svc Service, log *slog.Logger) error {
	gui, err := gocui.NewGui(gocui.NewGuiOpts{OutputMode: gocui.OutputNormal})
	if err != nil {
		return err
	}
	defer gui.Close()

	ui := newUI(ctx, svc, log)
	ui.gui = gui
	gui.Mouse = true

	gui.SetManagerFunc(ui.layout)
	if err := ui.bindKeys(gui); err != nil {
		return err
	}
	if err := ui.loadTasks(); err != nil {
		return err
	}

	done := make(chan struct{})
	stopped := watchContext(ctx, done, func() {
		gui.Update(func(*gocui.Gui) error {
			return gocui.ErrQuit
		})
	})

	err = gui.MainLoop()
	close(done)
	<-stopped
	if err != nil && !goerrors.Is(err, gocui.ErrQuit) {
		return err
	}

	return nil
}

// watchContext calls quit once ctx is cancelled, unless done is closed
// first. The returned channel is closed when the watcher exits.
func watchContext(ctx context.Context, done <-chan struct{}, quit func()) <-chan struct{} {
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		select {
		case <-ctx.Done():
			quit()
		case <-done:
		}
	}()
	return stopped
}

func newUI(ctx context.Context, svc Service, log *slog.Logger) *UI {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	ui := &UI{
		ctx:   ctx,
		svc:   svc,
		log:   log,
		focus: viewOpen,
	}
	ui.formEditor = &formEditor{ui: ui}
	return ui
}

func (u *UI) bindKeys(gui *gocui.Gui) error {
	global := []struct {
		key     any
		handler func(*gocui.Gui, *gocui.View) error
	}{
		{gocui.KeyCtrlC, u.quit},
		{'q', u.quit},
		{'r', u.reload},
		{'g', u.clearFilter},
		{'f', u.cycleStatusFilter},
		{'t', u.cycleDueFilter},
		{'a', u.addTask},
		{'e', u.editTask},
		{'x', u.markComplete},
		{'d', u.deleteTask},
		{'D', u.deleteCompleted},
		{'?', u.toggleHelp},
		{gocui.KeyTab, u.switchFocus},
		{'1', u.focusOpen},
		{'2', u.focusCompleted},
	}
	for _, binding := range global {
		if err := gui.SetKeybinding("", binding.key, gocui.ModNone, binding.handler); err != nil {
			return err
		}
	}

	for _, name := range []string{viewOpen, viewCompleted} {
		if err := gui.SetKeybinding(name, gocui.KeyArrowDown, gocui.ModNone, u.moveDown); err != nil {
			return err
		}
		if err := gui.SetKeybinding(name, 'j', gocui.ModNone, u.moveDown); err != nil {
			return err
		}
		if err := gui.SetKeybinding(name, gocui.KeyArrowUp, gocui.ModNone, u.moveUp); err != nil {
			return err
		}
		if err := gui.SetKeybinding(name, 'k', gocui.ModNone, u.moveUp); err != nil {
			return err
		}
		if err := gui.SetKeybinding(name, gocui.KeyEnter, gocui.ModNone, u.editTask); err != nil {
			return err
		}
		if err := gui.SetKeybinding(name, gocui.MouseWheelUp, gocui.ModNone, u.scrollUp); err != nil {
			return err
		}
		if err := gui.SetKeybinding(name, gocui.MouseWheelDown, gocui.ModNone, u.scrollDown); err != nil {
			return err
		}
		viewName := name
		if err := gui.SetViewClickBinding(&gocui.ViewMouseBinding{ViewName: viewName, Key: gocui.MouseLeft, Handler: func(opts gocui.ViewMouseBindingOpts) error {
			return u.onListClick(gui, viewName, opts)
		}}); err != nil {
			return err
		}
	}

	if err := gui.SetKeybinding(viewForm, gocui.KeyEnter, gocui.ModNone, u.submitForm); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewForm, gocui.KeyCtrlJ, gocui.ModNone, u.submitForm); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewForm, gocui.KeyTab, gocui.ModNone, u.nextFormField); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewForm, gocui.KeyBacktab, gocui.ModNone, u.prevFormField); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewForm, gocui.KeyArrowDown, gocui.ModNone, u.nextFormField); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewForm, gocui.KeyArrowUp, gocui.ModNone, u.prevFormField); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewForm, gocui.KeyEsc, gocui.ModNone, u.cancelForm); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewHelp, gocui.KeyEsc, gocui.ModNone, u.closeHelp); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewHelp, 'q', gocui.ModNone, u.closeHelp); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewHelp, '?', gocui.ModNone, u.closeHelp); err != nil {
		return err
	}
	return nil
}

func (u *UI) layout(gui *gocui.Gui) error {
	maxX, maxY := gui.Size()
	if maxX <= 0 || maxY <= 0 {
		return nil
	}

	headerView, err := gui.SetView(viewHeader, 0, 0, maxX-1, 0, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	headerView.Frame = false
	headerView.Wrap = true
	headerView.FgColor = gocui.ColorDefault
	u.renderHeader(headerView)

	footerY1 := max(maxY-2, 1)
	footerY0 := max(footerY1-2, 1)
	footerView, err := gui.SetView(viewFooter, 0, footerY0, maxX-1, footerY1, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	footerView.Frame = false
	footerView.Wrap = true
	footerView.FgColor = gocui.ColorDefault | gocui.AttrDim
	footerView.BgColor = gocui.ColorDefault
	u.renderFooter(footerView)

	bodyTop := 1
	bodyBottom := footerY0 - 1
	if bodyBottom < bodyTop {
		return nil
	}

	l := computeLayout(maxX, bodyBottom-bodyTop+1)
	leftX0 := 0
	leftX1 := leftX0 + l.leftWidth - 1
	rightX0 := leftX1 + 1
	if rightX0 >= maxX {
		rightX0 = leftX1
	}
	rightX1 := maxX - 1

	openY0 := bodyTop
	openY1 := openY0 + l.openHeight - 1
	completedY0 := openY1 + 1
	completedY1 := bodyBottom

	openView, err := gui.SetView(viewOpen, leftX0, openY0, leftX1, openY1, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		openView.TitleColor = gocui.ColorRed
	}
	openView.Title = fmt.Sprintf("1 Open (%d)", len(u.open))
	applyViewStyle(openView, u.focus == viewOpen)
	u.renderTaskList(openView, u.open, u.selectedOpen, u.focus == viewOpen)

	completedView, err := gui.SetView(viewCompleted, leftX0, completedY0, leftX1, completedY1, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		completedView.TitleColor = gocui.ColorGreen
	}
	completedView.Title = fmt.Sprintf("2 Completed (%d)", len(u.completed))
	applyViewStyle(completedView, u.focus == viewCompleted)
	u.renderTaskList(completedView, u.completed, u.selectedCompleted, u.focus == viewCompleted)

	detailView, err := gui.SetView(viewDetail, rightX0, bodyTop, rightX1, bodyBottom, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		detailView.Title = "Task"
		detailView.Wrap = true
	}
	u.renderDetail(detailView)

	_, _ = gui.SetViewOnTop(viewHeader)
	_, _ = gui.SetViewOnTop(viewFooter)

	if u.form != nil {
		if err := u.showForm(gui); err != nil {
			return err
		}
	} else {
		_ = gui.DeleteView(viewForm)
	}

	if u.helpActive {
		if err := u.showHelp(gui); err != nil {
			return err
		}
	} else {
		_ = gui.DeleteView(viewHelp)
	}

	if gui.CurrentView() == nil {
		_, _ = gui.SetCurrentView(u.focus)
	}

	gui.Cursor = u.form != nil

	return nil
}

type layout struct {
	leftWidth       int
	openHeight      int
	completedHeight int
}

func computeLayout(width, height int) layout {
	safeWidth := max(width-2, 20)
	safeHeight := max(height, 8)

	leftWidth := safeWidth * 3 / 5
	if leftWidth < 30 {
		leftWidth = 30
	}
	if leftWidth > safeWidth-18 {
		leftWidth = safeWidth / 2
	}

	openHeight := int(float64(safeHeight) * 0.6)
	if openHeight < 4 {
		openHeight = 4
	}
	completedHeight := safeHeight - openHeight
	if completedHeight < 4 {
		completedHeight = 4
		openHeight = max(safeHeight-completedHeight, 4)
	}

	return layout{
		leftWidth:       leftWidth,
		openHeight:      openHeight,
		completedHeight: completedHeight,
	}
}

func (u *UI) loadTasks() error {
	list, err := u.svc.ListFiltered(u.ctx, u.filter)
	if err != nil {
		return err
	}

	u.today = u.svc.Today()
	u.open, u.completed = splitByStatus(list)

	if u.selectedOpen >= len(u.open) {
		u.selectedOpen = max(len(u.open)-1, 0)
	}
	if u.selectedCompleted >= len(u.completed) {
		u.selectedCompleted = max(len(u.completed)-1, 0)
	}
	return nil
}

func (u *UI) renderHeader(view *gocui.View) {
	view.Clear()
	fmt.Fprintf(view, "%s | Today: %s", filterLabel(u.filter), u.today)
}

func (u *UI) renderFooter(view *gocui.View) {
	view.Clear()
	view.SetOrigin(0, 0)
	view.SetCursor(0, 0)

	fmt.Fprintln(view, "a add | e edit | x complete | d delete | D delete completed | tab pane | ? help | q quit")
	fmt.Fprintln(view, "f status filter | t due filter | g clear filter | r reload | enter save (form) | esc cancel")
	if u.status != "" {
		fmt.Fprint(view, u.status)
	}
}

func (u *UI) renderTaskList(view *gocui.View, list []model.Task, selected int, focused bool) {
	view.Clear()
	for i, task := range list {
		prefix := " "
		if i == selected {
			if focused {
				prefix = ">"
			} else {
				prefix = "*"
			}
		}
		fmt.Fprintf(view, "%s%s\n", prefix, formatTaskSummary(task))
	}
	if focused {
		view.SetCursor(0, min(selected, len(list)-1))
	}
}

func (u *UI) renderDetail(view *gocui.View) {
	view.Clear()
	selected := u.selectedTask()
	if selected == nil {
		fmt.Fprint(view, "No task selected")
		return
	}
	fmt.Fprint(view, formatTaskDetail(*selected, u.today))
}

func (u *UI) onListClick(gui *gocui.Gui, viewName string, opts gocui.ViewMouseBindingOpts) error {
	if u.inputActive() {
		return nil
	}
	view, err := gui.View(viewName)
	if err != nil {
		return nil
	}

	_, y0, _, _ := view.Dimensions()
	_, oy := view.Origin()
	row := max(opts.Y-y0-1+oy, 0)

	switch viewName {
	case viewOpen:
		u.selectedOpen = min(row, len(u.open)-1)
	case viewCompleted:
		u.selectedCompleted = min(row, len(u.completed)-1)
	default:
		return nil
	}
	return u.setFocus(gui, viewName)
}

func (u *UI) scrollUp(gui *gocui.Gui, view *gocui.View) error {
	if u.inputActive() || view == nil {
		return nil
	}
	view.ScrollUp(1)
	return nil
}

func (u *UI) scrollDown(gui *gocui.Gui, view *gocui.View) error {
	if u.inputActive() || view == nil {
		return nil
	}
	view.ScrollDown(1)
	return nil
}

func (u *UI) selectedTask() *model.Task {
	switch u.focus {
	case viewCompleted:
		if u.selectedCompleted >= 0 && u.selectedCompleted < len(u.completed) {
			return &u.completed[u.selectedCompleted]
		}
	default:
		if u.selectedOpen >= 0 && u.selectedOpen < len(u.open) {
			return &u.open[u.selectedOpen]
		}
	}
	return nil
}

func (u *UI) switchFocus(gui *gocui.Gui, _ *gocui.View) error {
	if u.focus == viewOpen {
		return u.setFocus(gui, viewCompleted)
	}
	return u.setFocus(gui, viewOpen)
}

func (u *UI) focusOpen(gui *gocui.Gui, _ *gocui.View) error {
	return u.setFocus(gui, viewOpen)
}

func (u *UI) focusCompleted(gui *gocui.Gui, _ *gocui.View) error {
	return u.setFocus(gui, viewCompleted)
}

func (u *UI) setFocus(gui *gocui.Gui, name string) error {
	if u.inputActive() {
		return nil
	}
	u.focus = name
	if gui != nil {
		_, _ = gui.SetCurrentView(name)
	}
	return nil
}

func (u *UI) moveDown(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	switch u.focus {
	case viewCompleted:
		if u.selectedCompleted < len(u.completed)-1 {
			u.selectedCompleted++
		}
	default:
		if u.selectedOpen < len(u.open)-1 {
			u.selectedOpen++
		}
	}
	return nil
}

func (u *UI) moveUp(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	switch u.focus {
	case viewCompleted:
		if u.selectedCompleted > 0 {
			u.selectedCompleted--
		}
	default:
		if u.selectedOpen > 0 {
			u.selectedOpen--
		}
	}
	return nil
}

func (u *UI) reload(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	u.status = ""
	return u.refresh()
}

// refresh reloads the panes. A store failure is shown in the footer
// instead of ending the main loop.
func (u *UI) refresh() error {
	if err := u.loadTasks(); err != nil {
		u.log.Warn("load tasks", "filter", u.filter.Token(), "error", err)
		u.status = err.Error()
	}
	return nil
}

func (u *UI) clearFilter(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	u.filter = model.Filter{}
	return u.reload(nil, nil)
}

func (u *UI) cycleStatusFilter(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	u.filter.Status = nextStatusFilter(u.filter.Status)
	return u.reload(nil, nil)
}

func (u *UI) cycleDueFilter(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	u.filter.Due = nextDueFilter(u.filter.Due)
	return u.reload(nil, nil)
}

func (u *UI) toggleHelp(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() && !u.helpActive {
		return nil
	}
	u.helpActive = !u.helpActive
	return nil
}

func (u *UI) closeHelp(gui *gocui.Gui, _ *gocui.View) error {
	u.helpActive = false
	_ = gui.DeleteView(viewHelp)
	_, _ = gui.SetCurrentView(u.focus)
	return nil
}

func (u *UI) showHelp(gui *gocui.Gui) error {
	maxX, maxY := gui.Size()
	width := max(60, maxX/2)
	height := 16
	x0 := (maxX - width) / 2
	y0 := (maxY - height) / 2

	view, err := gui.SetView(viewHelp, x0, y0, x0+width, y0+height, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		view.Title = "Help"
		view.Wrap = true
	}
	view.Clear()
	fmt.Fprint(view, helpText())
	_, _ = gui.SetCurrentView(viewHelp)
	return nil
}

func (u *UI) addTask(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	u.form = newFormState(nil)
	return nil
}

func (u *UI) editTask(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	selected := u.selectedTask()
	if selected == nil {
		return nil
	}
	u.form = newFormState(selected)
	return nil
}

func (u *UI) showForm(gui *gocui.Gui) error {
	if u.form == nil {
		return nil
	}

	maxX, maxY := gui.Size()
	width := max(60, maxX/2)
	height := min(12, max(8, maxY/2))
	x0 := (maxX - width) / 2
	y0 := (maxY - height) / 2

	view, err := gui.SetView(viewForm, x0, y0, x0+width, y0+height, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		view.Wrap = true
	}
	view.Title = "New Task"
	if u.form.taskID != 0 {
		view.Title = "Edit Task"
	}
	view.Editable = true
	view.KeybindOnEdit = true
	view.Editor = u.formEditor
	u.renderForm(view)
	_, _ = gui.SetCurrentView(viewForm)
	return nil
}

func (u *UI) submitForm(gui *gocui.Gui, _ *gocui.View) error {
	if !u.saveForm() {
		return nil
	}
	_ = gui.DeleteView(viewForm)
	_, _ = gui.SetCurrentView(u.focus)
	return nil
}

// saveForm sends the form to the service. It reports whether the form was
// saved and closed; on validation failure the form stays open with the
// field messages.
func (u *UI) saveForm() bool {
	if u.form == nil {
		return false
	}

	input, failures := u.form.input()
	if len(failures) > 0 {
		u.form.errors = failures
		u.status = "Please fix the highlighted fields."
		return false
	}

	var err error
	if u.form.taskID == 0 {
		_, err = u.svc.Create(u.ctx, input)
	} else {
		_, err = u.svc.Edit(u.ctx, u.form.taskID, input)
	}
	if err != nil {
		if fields := validationFields(err); fields != nil {
			u.form.errors = fields
			u.status = "Please fix the highlighted fields."
			return false
		}
		u.log.Warn("save task", "id", u.form.taskID, "error", err)
		u.status = err.Error()
		return false
	}

	u.form = nil
	u.status = ""
	_ = u.refresh()
	return true
}

func (u *UI) cancelForm(gui *gocui.Gui, _ *gocui.View) error {
	u.form = nil
	u.status = ""
	_ = gui.DeleteView(viewForm)
	_, _ = gui.SetCurrentView(u.focus)
	return nil
}

func (u *UI) nextFormField(_ *gocui.Gui, view *gocui.View) error {
	if u.form == nil {
		return nil
	}
	u.form.next()
	u.renderForm(view)
	return nil
}

func (u *UI) prevFormField(_ *gocui.Gui, view *gocui.View) error {
	if u.form == nil {
		return nil
	}
	u.form.prev()
	u.renderForm(view)
	return nil
}

func (u *UI) renderForm(view *gocui.View) {
	if u.form == nil || view == nil {
		return
	}
	view.Clear()
	for index, field := range u.form.fields {
		prefix := "  "
		if index == u.form.index {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s: %s", prefix, field.Label, field.Value)
		if message := u.form.fieldError(field.Name); message != "" {
			line += "  ! " + message
		}
		fmt.Fprintln(view, line)
	}
	current := u.form.fields[u.form.index]
	cursorX := len([]rune(current.Label)) + len([]rune(current.Value)) + 4
	view.SetCursor(cursorX, u.form.index)
}

func (e *formEditor) Edit(view *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) bool {
	ui := e.ui
	if ui == nil || ui.form == nil || view == nil {
		return false
	}
	handled := ui.form.applyKey(key, ch, mod)
	ui.renderForm(view)
	return handled
}

func (u *UI) markComplete(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	selected := u.selectedTask()
	if selected == nil {
		return nil
	}
	if err := u.svc.MarkComplete(u.ctx, selected.ID); err != nil {
		u.log.Warn("mark complete", "id", selected.ID, "error", err)
		u.status = err.Error()
		return nil
	}
	u.status = fmt.Sprintf("Completed %q", selected.Title)
	return u.refresh()
}

func (u *UI) deleteTask(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	selected := u.selectedTask()
	if selected == nil {
		return nil
	}
	if err := u.svc.Delete(u.ctx, selected.ID); err != nil {
		u.log.Warn("delete task", "id", selected.ID, "error", err)
		u.status = err.Error()
		return nil
	}
	u.status = fmt.Sprintf("Deleted %q", selected.Title)
	return u.refresh()
}

func (u *UI) deleteCompleted(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	removed, err := u.svc.DeleteCompleted(u.ctx)
	if err != nil {
		u.log.Warn("delete completed", "error", err)
		u.status = err.Error()
		return nil
	}
	u.status = fmt.Sprintf("Deleted %d completed task(s)", removed)
	return u.refresh()
}

func (u *UI) inputActive() bool {
	return u.form != nil || u.helpActive
}

func (u *UI) quit(_ *gocui.Gui, _ *gocui.View) error {
	return gocui.ErrQuit
}

func helpText() string {
	return strings.Join([]string{
		"Navigation:",
		"  tab switch pane | 1 Open | 2 Completed",
		"  j/k or arrows move selection | mouse click selects",
		"",
		"Actions:",
		"  a add task | e/enter edit task | x mark complete",
		"  d delete task | D delete all completed tasks",
		"",
		"Filter:",
		"  f cycle status (any/open/closed)",
		"  t cycle due (any/past/future/today) | g clear",
		"",
		"Form:",
		"  tab/arrows next field | space/left/right toggle status",
		"  enter save | esc cancel",
		"",
		"Other:",
		"  r reload | ? help | esc/q close help | q quit",
	}, "\n")
}

func applyViewStyle(view *gocui.View, focused bool) {
	view.Frame = true
	view.Highlight = focused
	view.HighlightInactive = false
	view.SelBgColor = gocui.ColorBlue
	view.SelFgColor = gocui.ColorBlack
	view.InactiveViewSelBgColor = gocui.ColorDefault
	if focused {
		view.FrameColor = gocui.ColorCyan
		view.TitleColor = gocui.ColorCyan
	} else {
		view.FrameColor = gocui.ColorDefault
	}
}
