package services

import (
	"sync/atomic"

	"hirelens/resume-analyzer/internal/models"
)

type ViewStore interface {
	// Current returns the last published view, or the demo view when
	// nothing has been published yet.
	Current() *models.AnalysisView
	Publish(view *models.AnalysisView)
	IsDemo() bool
}

type viewStore struct {
	current atomic.Pointer[models.AnalysisView]
}

func NewViewStore() ViewStore {
	return &viewStore{}
}

func (s *viewStore) Current() *models.AnalysisView {
	if view := s.current.Load(); view != nil {
		return view.Clone()
	}
	return models.DemoView()
}

// Publish replaces the current view. A nil view is ignored so the display
// never goes blank.
func (s *viewStore) Publish(view *models.AnalysisView) {
	if view == nil {
		return
	}
	s.current.Store(view.Clone())
}

func (s *viewStore) IsDemo() bool {
	return s.current.Load() == nil
}
