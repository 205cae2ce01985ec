package controllers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/smileline/dental-clinic-app/db"
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

func workingHourApp() *fiber.App {
	app := fiber.New()
	app.Post("/working-hours", func(c *fiber.Ctx) error {
		c.Locals("userID", uint(1))
		return CreateWorkingHour(c)
	})
	return app
}

func TestCreateWorkingHourRejectsSecondActiveRule(t *testing.T) {
	mock := setupMockDB(t)
	existing := sqlmock.NewRows([]string{"id", "dentist_id", "day_of_week", "is_work_day"}).
		AddRow(7, 1, 1, true)
	mock.ExpectQuery(`SELECT \* FROM "working_hours"`).WillReturnRows(existing)

	body := `{"day_of_week":1,"start_time":"10:00","end_time":"18:00","is_work_day":true}`
	req := httptest.NewRequest(fiber.MethodPost, "/working-hours", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := workingHourApp().Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet(), "no insert may be issued")
}

func TestCreateWorkingHourFirstActiveRuleSucceeds(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "working_hours"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "working_hours"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	body := `{"day_of_week":2,"start_time":"09:00","end_time":"17:00","is_work_day":true}`
	req := httptest.NewRequest(fiber.MethodPost, "/working-hours", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := workingHourApp().Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateInactiveRuleSkipsDuplicateCheck(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "working_hours"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectCommit()

	body := `{"day_of_week":0,"start_time":"09:00","end_time":"17:00","is_work_day":false}`
	req := httptest.NewRequest(fiber.MethodPost, "/working-hours", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := workingHourApp().Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}
