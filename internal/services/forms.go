package services

import (
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"

	"hirelens/resume-analyzer/internal/models"
)

var ErrFormNotFound = errors.New("form not found")

// FormRegistry holds one SubmissionController per open upload form. All
// controllers publish into the same ViewStore.
type FormRegistry interface {
	Open() (uuid.UUID, SubmissionController)
	Get(id uuid.UUID) (SubmissionController, error)
	Close(id uuid.UUID) error
	Store() ViewStore
}

type formRegistry struct {
	client  AnalyzerClient
	store   ViewStore
	storage ResumeStorage
	policy  models.ValidationPolicy

	mu    sync.RWMutex
	forms map[uuid.UUID]SubmissionController
}

func NewFormRegistry(
	client AnalyzerClient,
	store ViewStore,
	storage ResumeStorage,
	policy models.ValidationPolicy,
) FormRegistry {
	return &formRegistry{
		client:  client,
		store:   store,
		storage: storage,
		policy:  policy,
		forms:   make(map[uuid.UUID]SubmissionController),
	}
}

func (r *formRegistry) Open() (uuid.UUID, SubmissionController) {
	id := uuid.New()
	controller := NewSubmissionController(r.client, r.store, r.policy)

	r.mu.Lock()
	r.forms[id] = controller
	r.mu.Unlock()

	log.Printf("📝 Form %s opened (%s policy)\n", id, r.policy)
	return id, controller
}

func (r *formRegistry) Get(id uuid.UUID) (SubmissionController, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	controller, ok := r.forms[id]
	if !ok {
		return nil, ErrFormNotFound
	}
	return controller, nil
}

// Close drops the form once its outstanding submission, if any, has
// resolved, and removes its stored resume.
func (r *formRegistry) Close(id uuid.UUID) error {
	r.mu.Lock()
	controller, ok := r.forms[id]
	delete(r.forms, id)
	r.mu.Unlock()

	if !ok {
		return ErrFormNotFound
	}

	go func() {
		controller.Wait()
		if file := controller.Draft().ResumeFile; file != nil {
			if err := r.storage.DeleteResume(file.Path); err != nil {
				log.Printf("⚠️  Failed to remove resume of form %s: %v\n", id, err)
			}
		}
		log.Printf("🗑️  Form %s closed\n", id)
	}()
	return nil
}

func (r *formRegistry) Store() ViewStore {
	return r.store
}
