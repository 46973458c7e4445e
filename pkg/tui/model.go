// Package tui renders the checkout as a Bubble Tea program over a cart.Store.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart_err"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/learnmore"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/metrics"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/route"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/telemetry"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type screen int

const (
	screenCart screen = iota
	screenRoute
)

// swapDoneMsg arrives when the swap delay of a pending swap has elapsed.
type swapDoneMsg struct {
	pending cart.PendingSwap
}

// routeTickMsg advances the route animation. run identifies the opening of
// the route view that scheduled it so ticks from a closed view are dropped.
type routeTickMsg struct {
	run int
}

type learnMoreMsg struct {
	err error
}

// Options configure a Model. Zero values select defaults.
type Options struct {
	Context      context.Context
	Logger       *zap.Logger
	Opener       learnmore.Opener
	LearnMoreURL string
	RouteTick    time.Duration
}

// Model is the Bubble Tea model of the checkout screen.
type Model struct {
	ctx          context.Context
	log          *zap.Logger
	store        *cart.Store
	engine       *metrics.Engine
	opener       learnmore.Opener
	learnMoreURL string
	routeTick    time.Duration

	keys     KeyMap
	styles   Styles
	help     help.Model
	spinner  spinner.Model
	progress progress.Model

	screen   screen
	cursor   int
	info     map[string]bool
	pending  map[string]cart.PendingSwap
	route    *route.Simulation
	routeRun int
	rewarded bool

	status    string
	statusErr bool
	width     int
	quitting  bool
}

func NewModel(store *cart.Store, opts Options) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.RouteTick <= 0 {
		opts.RouteTick = route.DefaultTick
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = NewStyles().Primary

	m := Model{
		ctx:          opts.Context,
		log:          opts.Logger.Named("tui"),
		store:        store,
		engine:       metrics.NewEngine(store),
		opener:       opts.Opener,
		learnMoreURL: opts.LearnMoreURL,
		routeTick:    opts.RouteTick,
		keys:         DefaultKeyMap(),
		styles:       NewStyles(),
		help:         help.New(),
		spinner:      sp,
		progress:     progress.New(progress.WithSolidFill(string(ColorInfo)), progress.WithWidth(40)),
		info:         make(map[string]bool),
		pending:      make(map[string]cart.PendingSwap),
		route:        &route.Simulation{},
	}
	m.rewarded = m.engine.Report().RewardUnlocked
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case swapDoneMsg:
		return m.finishSwap(msg.pending), nil

	case routeTickMsg:
		if msg.run != m.routeRun || m.screen != screenRoute {
			return m, nil
		}
		if _, done := m.route.Step(); done {
			return m, nil
		}
		return m, m.scheduleRouteTick()

	case learnMoreMsg:
		if msg.err != nil {
			m.setError(msg.err)
		} else {
			m.setStatus("Opened " + m.learnMoreURL)
		}
		return m, nil

	case spinner.TickMsg:
		if len(m.pending) == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		if ids := m.store.CancelAll(); len(ids) > 0 {
			m.log.Info("Quit with swaps in flight", zap.Strings("item_ids", ids))
		}
		m.pending = make(map[string]cart.PendingSwap)
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.screen == screenRoute {
		if key.Matches(msg, m.keys.Close, m.keys.Route) {
			m.closeRoute()
		}
		return m, nil
	}

	items := m.store.Items()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.ToggleAlt):
		item, ok := m.focused()
		if !ok {
			break
		}
		if _, has := m.store.AlternativeFor(item.ID); !has {
			m.setStatus("No greener option for " + item.Name)
			break
		}
		m.store.ToggleAlternative(item.ID)

	case key.Matches(msg, m.keys.Swap):
		return m.startSwap()

	case key.Matches(msg, m.keys.Delivery):
		m.store.SetDelivery(m.store.Choices().Delivery.Next())
		m.afterChange()

	case key.Matches(msg, m.keys.Packaging):
		m.store.SetPackaging(m.store.Choices().Packaging.Toggle())
		m.afterChange()

	case key.Matches(msg, m.keys.Route):
		m.screen = screenRoute
		m.routeRun++
		m.route.Start()
		return m, m.scheduleRouteTick()

	case key.Matches(msg, m.keys.Info):
		if item, ok := m.focused(); ok {
			m.info[item.ID] = !m.info[item.ID]
		}

	case key.Matches(msg, m.keys.LearnMore):
		cmd := m.openLearnMore()
		return m, cmd
	}
	return m, nil
}

func (m Model) focused() (cart.CartItem, bool) {
	items := m.store.Items()
	if m.cursor < 0 || m.cursor >= len(items) {
		return cart.CartItem{}, false
	}
	return items[m.cursor], true
}

func (m Model) startSwap() (tea.Model, tea.Cmd) {
	item, ok := m.focused()
	if !ok {
		return m, nil
	}
	alt, ok := m.store.AlternativeFor(item.ID)
	if !ok {
		m.setStatus("No greener option for " + item.Name)
		return m, nil
	}

	p, err := m.store.BeginSwap(item.ID, alt.ID)
	if err != nil {
		telemetry.RecordSwap(m.ctx, cart_err.CategoryOf(err).String())
		m.setError(err)
		return m, nil
	}

	m.pending[item.ID] = p
	m.setStatus("Swapping " + item.Name + "...")
	cmds := []tea.Cmd{waitForSwap(p, m.store.SwapDelay())}
	if len(m.pending) == 1 {
		cmds = append(cmds, m.spinner.Tick)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) finishSwap(p cart.PendingSwap) Model {
	delete(m.pending, p.OriginalID)
	if m.quitting {
		return m
	}

	res := m.store.CommitSwap(p)
	if !res.Applied {
		telemetry.RecordSwap(m.ctx, "noop")
		return m
	}
	telemetry.RecordSwap(m.ctx, "applied")
	delete(m.info, p.OriginalID)
	m.setStatus(fmt.Sprintf("Swapped in %s, saving %s", res.Item.Name, metrics.Kg(p.Alternative.CarbonSavings)))
	m.afterChange()
	return m
}

// afterChange records the reward the first time it unlocks.
func (m *Model) afterChange() {
	report := m.engine.Report()
	if report.RewardUnlocked && !m.rewarded {
		telemetry.RecordReward(m.ctx, report.Savings.Total)
		m.log.Info("Green reward unlocked", zap.Float64("savings_kg", report.Savings.Total))
	}
	m.rewarded = report.RewardUnlocked
}

func (m *Model) closeRoute() {
	m.screen = screenCart
	m.route.Stop()
	m.routeRun++
}

func (m Model) scheduleRouteTick() tea.Cmd {
	run := m.routeRun
	return tea.Tick(m.routeTick, func(time.Time) tea.Msg {
		return routeTickMsg{run: run}
	})
}

func (m *Model) openLearnMore() tea.Cmd {
	if m.opener == nil || m.learnMoreURL == "" {
		m.setStatus("Learn more: " + m.learnMoreURL)
		return nil
	}
	ctx, opener, url := m.ctx, m.opener, m.learnMoreURL
	return func() tea.Msg {
		return learnMoreMsg{err: opener.Open(ctx, url)}
	}
}

func waitForSwap(p cart.PendingSwap, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return swapDoneMsg{pending: p}
	})
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = cart_err.UserMessage(err)
	m.statusErr = !cart_err.IsExpectedUserError(err)
	if m.statusErr {
		m.log.Error("Checkout action failed", zap.Error(err))
	}
}

// Run starts the program on the terminal and blocks until the user quits.
func Run(ctx context.Context, store *cart.Store, opts Options, progOpts ...tea.ProgramOption) error {
	opts.Context = ctx
	progOpts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, progOpts...)
	_, err := tea.NewProgram(NewModel(store, opts), progOpts...).Run()
	if err != nil && ctx.Err() == nil {
		return cart_err.NewInternalError("terminal UI stopped unexpectedly", err)
	}
	store.CancelAll()
	return nil
}
