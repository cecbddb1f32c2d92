package migration

import (
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"shiftbill/internal/app/server/config"
)

// MockMigrator мок для интерфейса Migrator
type MockMigrator struct {
	mock.Mock
}

func (m *MockMigrator) Up() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockMigrator) Close() (error, error) {
	args := m.Called()
	return args.Error(0), args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{
		DB: config.DB{DatabaseURI: "postgres://localhost/shiftbill", Migrations: "migrations"},
	}
}

func engineFor(m Migrator, gotSource *string) Engine {
	return func(source, _ string) (Migrator, error) {
		if gotSource != nil {
			*gotSource = source
		}
		return m, nil
	}
}

func TestMigration_Up_Success(t *testing.T) {
	mockM := new(MockMigrator)
	mockM.On("Up").Return(nil)
	mockM.On("Close").Return(nil, nil)

	var source string
	err := NewMigration(testConfig(), engineFor(mockM, &source)).Up()

	assert.NoError(t, err)
	assert.Equal(t, "file://migrations", source)
	mockM.AssertExpectations(t)
}

func TestMigration_Up_NoChange(t *testing.T) {
	mockM := new(MockMigrator)
	// ErrNoChange не должна считаться ошибкой
	mockM.On("Up").Return(migrate.ErrNoChange)
	mockM.On("Close").Return(nil, nil)

	err := NewMigration(testConfig(), engineFor(mockM, nil)).Up()

	assert.NoError(t, err)
}

func TestMigration_Up_Failure(t *testing.T) {
	mockM := new(MockMigrator)
	boom := errors.New("syntax error at or near")
	mockM.On("Up").Return(boom)
	mockM.On("Close").Return(nil, nil)

	err := NewMigration(testConfig(), engineFor(mockM, nil)).Up()

	assert.ErrorIs(t, err, boom)
	mockM.AssertCalled(t, "Close")
}

func TestMigration_Up_CloseError(t *testing.T) {
	mockM := new(MockMigrator)
	dbErr := errors.New("connection closed")
	mockM.On("Up").Return(nil)
	mockM.On("Close").Return(nil, dbErr)

	err := NewMigration(testConfig(), engineFor(mockM, nil)).Up()

	assert.ErrorIs(t, err, dbErr)
}

func TestMigration_Up_EngineError(t *testing.T) {
	// ошибка на этапе создания мигратора, например неверный драйвер
	engine := func(string, string) (Migrator, error) {
		return nil, errors.New("engine crash")
	}

	err := NewMigration(testConfig(), engine).Up()

	assert.EqualError(t, err, "engine crash")
}
