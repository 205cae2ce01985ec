package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/smileline/dental-clinic-app/db"
	"github.com/smileline/dental-clinic-app/models"
)

func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	db.DB = gdb
	t.Cleanup(func() {
		db.DB = nil
		conn.Close()
	})
	return mock
}

func appointmentRow(id uint, status models.AppointmentStatus) *sqlmock.Rows {
	start := time.Now().Add(100 * time.Hour)
	return sqlmock.NewRows([]string{"id", "patient_id", "dentist_id", "start_time", "end_time", "status"}).
		AddRow(id, 1, 2, start, start.Add(30*time.Minute), string(status))
}

func TestTransitionRejectsSuggestedTarget(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "appointments"`).
		WillReturnRows(appointmentRow(5, models.StatusPending))

	_, err := Transition(5, models.StatusSuggested, ActorDentist, "")

	var illegal *IllegalTransitionError
	require.ErrorAs(t, err, &illegal)
	assert.Equal(t, models.StatusPending, illegal.From)
	assert.Contains(t, illegal.Reason, "start time")
	assert.NoError(t, mock.ExpectationsWereMet(), "no status update may be issued")
}

func TestTransitionReportsLostRace(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "appointments"`).
		WillReturnRows(appointmentRow(5, models.StatusPending))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "appointments"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "appointments"`).
		WillReturnRows(appointmentRow(5, models.StatusConfirmed))

	_, err := Transition(5, models.StatusConfirmed, ActorDentist, "")

	var illegal *IllegalTransitionError
	require.ErrorAs(t, err, &illegal)
	assert.Equal(t, models.StatusConfirmed, illegal.From, "the error reports the fresh status")
	assert.Contains(t, illegal.Reason, "concurrently")
}

func TestTransitionLostRaceWithUnreadableRow(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "appointments"`).
		WillReturnRows(appointmentRow(5, models.StatusPending))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "appointments"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "appointments"`).
		WillReturnError(errors.New("connection reset"))

	_, err := Transition(5, models.StatusConfirmed, ActorDentist, "")

	var illegal *IllegalTransitionError
	require.ErrorAs(t, err, &illegal)
	assert.Contains(t, illegal.Reason, "status unknown")
}
