package handlers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/javatronic/lms/internal/domain/entities"
	"github.com/javatronic/lms/internal/domain/mocks"
	"github.com/javatronic/lms/internal/domain/services"
)

type testEnv struct {
	handler  *PersonHandler
	storage  *mocks.Storage
	ios      *mocks.IOs
	events   *mocks.EventListener
	logs     *observer.ObservedLogs
	registry entities.Registry
}

func newTestEnv(persons []*entities.Person, relationships []*entities.Relationship) *testEnv {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)
	registry := entities.DefaultRegistry()
	env := &testEnv{
		storage:  mocks.NewStorage(persons, relationships),
		ios:      &mocks.IOs{},
		events:   &mocks.EventListener{},
		logs:     logs,
		registry: registry,
	}
	env.handler = NewPersonHandler(env.storage, env.ios, env.events, services.NewParser(registry, logger), logger)
	return env
}

func newPerson(t *testing.T, id int, firstname, lastname string, opts ...entities.PersonOption) *entities.Person {
	t.Helper()
	p, err := entities.NewPerson(id, firstname, lastname, opts...)
	require.NoError(t, err)
	return p
}
