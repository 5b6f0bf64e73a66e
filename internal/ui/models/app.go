package models

import (
	tea "github.com/charmbracelet/bubbletea"
)

// ViewState is the screen currently shown.
type ViewState int

const (
	ViewScanning ViewState = iota
	ViewCategorySelection
	ViewReview
	ViewConfirmation
	ViewCleaning
	ViewLens
)

// AppModel is the root model: a small state machine that owns the
// shared Context and delegates to the active view.
type AppModel struct {
	ctx   *Context
	state ViewState

	scanView     *ScanViewModel
	categoryView *CategoryViewModel
	reviewView   *ReviewViewModel
	confirmView  *ConfirmViewModel
	cleanView    *CleanViewModel
	lensView     *LensViewModel

	lensStart string
	width     int
	height    int
}

func NewAppModel(ctx *Context, lensStart string) *AppModel {
	return &AppModel{ctx: ctx, state: ViewScanning, lensStart: lensStart}
}

// NewLensApp starts directly in the disk-usage explorer.
func NewLensApp(ctx *Context, lensStart string) *AppModel {
	m := NewAppModel(ctx, lensStart)
	m.state = ViewLens
	m.lensView = NewLensViewModel(ctx, lensStart)
	return m
}

func (m *AppModel) Init() tea.Cmd {
	if m.state == ViewLens {
		return m.lensView.Init()
	}
	m.scanView = NewScanViewModel(m.ctx, m.ctx.Registry.Available(), m.width)
	return m.scanView.Init()
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.state != ViewCleaning || !m.cleanView.Running() {
				return m, tea.Quit
			}
		case "esc":
			switch m.state {
			case ViewReview, ViewLens:
				m.state = ViewCategorySelection
				return m, nil
			case ViewConfirmation:
				m.state = ViewReview
				return m, nil
			}
		case "r":
			if m.state == ViewCleaning && !m.cleanView.Running() {
				m.scanView = NewScanViewModel(m.ctx, m.ctx.Registry.Available(), m.width)
				m.state = ViewScanning
				return m, m.scanView.Init()
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case ScanCompleteMsg:
		m.categoryView = NewCategoryViewModel(m.ctx)
		m.state = ViewCategorySelection
		return m, nil

	case RescanMsg:
		m.scanView = NewScanViewModel(m.ctx, m.ctx.Registry.Enabled(msg.ScannerIDs), m.width)
		m.state = ViewScanning
		return m, m.scanView.Init()

	case CategoriesSelectedMsg:
		m.reviewView = NewReviewViewModel(m.ctx, msg.ScannerIDs)
		m.state = ViewReview
		return m, nil

	case ItemsSelectedMsg:
		m.confirmView = NewConfirmViewModel(m.ctx, msg.Items)
		m.state = ViewConfirmation
		return m, nil

	case ConfirmedMsg:
		m.cleanView = NewCleanViewModel(m.ctx, m.confirmView.Items(), msg.DryRun)
		m.state = ViewCleaning
		return m, m.cleanView.Init()

	case OpenLensMsg:
		m.lensView = NewLensViewModel(m.ctx, m.lensStart)
		m.state = ViewLens
		return m, m.lensView.Init()

	case BackMsg:
		if m.state == ViewConfirmation {
			m.state = ViewReview
		}
		return m, nil
	}

	return m.delegate(msg)
}

func (m *AppModel) delegate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.state {
	case ViewScanning:
		if m.scanView != nil {
			m.scanView, cmd = m.scanView.Update(msg)
		}
	case ViewCategorySelection:
		if m.categoryView != nil {
			m.categoryView, cmd = m.categoryView.Update(msg)
		}
	case ViewReview:
		if m.reviewView != nil {
			m.reviewView, cmd = m.reviewView.Update(msg)
		}
	case ViewConfirmation:
		if m.confirmView != nil {
			m.confirmView, cmd = m.confirmView.Update(msg)
		}
	case ViewCleaning:
		if m.cleanView != nil {
			m.cleanView, cmd = m.cleanView.Update(msg)
		}
	case ViewLens:
		if m.lensView != nil {
			m.lensView, cmd = m.lensView.Update(msg)
		}
	}

	return m, cmd
}

func (m *AppModel) View() string {
	switch m.state {
	case ViewScanning:
		if m.scanView != nil {
			return m.scanView.View()
		}
	case ViewCategorySelection:
		if m.categoryView != nil {
			return m.categoryView.View()
		}
	case ViewReview:
		if m.reviewView != nil {
			return m.reviewView.View()
		}
	case ViewConfirmation:
		if m.confirmView != nil {
			return m.confirmView.View()
		}
	case ViewCleaning:
		if m.cleanView != nil {
			return m.cleanView.View()
		}
	case ViewLens:
		if m.lensView != nil {
			return m.lensView.View()
		}
	}
	return "Loading..."
}
