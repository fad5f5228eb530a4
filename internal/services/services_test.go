package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"mime/multipart"
	"net/textproto"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"portfolio_backend/internal/cache"
	"portfolio_backend/internal/imageconfig"
	"portfolio_backend/internal/imagestorage"
	"portfolio_backend/internal/models"
	"portfolio_backend/internal/repositories"
)

type testEnv struct {
	db       *gorm.DB
	cache    cache.Cache
	images   *imagestorage.Service
	registry *imageconfig.Registry

	userRepo repositories.UserRepository
	appRepo  repositories.ApplicationRepository
	techRepo repositories.TechnologyRepository
	msgRepo  repositories.MessageRepository
	expRepo  repositories.ExperienceRepository

	owner *models.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Application{},
		&models.Technology{},
		&models.Message{},
		&models.Experience{},
	))

	registry := imageconfig.NewRegistry()
	images, err := imagestorage.NewService(t.TempDir(), registry)
	require.NoError(t, err)

	env := &testEnv{
		db:       db,
		cache:    cache.NewMemoryCache(),
		images:   images,
		registry: registry,
		userRepo: repositories.NewUserRepository(),
		appRepo:  repositories.NewApplicationRepository(),
		techRepo: repositories.NewTechnologyRepository(),
		msgRepo:  repositories.NewMessageRepository(),
		expRepo:  repositories.NewExperienceRepository(),
	}

	env.owner = &models.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "x",
		Role:         models.UserRoleAdmin,
	}
	require.NoError(t, db.Create(env.owner).Error)
	return env
}

func (e *testEnv) ctx() context.Context {
	return context.Background()
}

func pngFileHeader(t *testing.T, filename string, width, height int) *multipart.FileHeader {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var imgBuf bytes.Buffer
	require.NoError(t, png.Encode(&imgBuf, img))

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", "image/png")
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(imgBuf.Bytes())
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

// stubSender records notifications for assertions and signals delivery,
// since the message service notifies asynchronously.
type stubSender struct {
	mu        sync.Mutex
	delivered chan struct{}
	subjects  []string
}

func newStubSender() *stubSender {
	return &stubSender{delivered: make(chan struct{}, 16)}
}

func (s *stubSender) Send(to, subject, htmlBody string) error {
	return nil
}

func (s *stubSender) NotifyMessageReceived(senderName, senderEmail, subject, body string) error {
	s.mu.Lock()
	s.subjects = append(s.subjects, subject)
	s.mu.Unlock()
	s.delivered <- struct{}{}
	return nil
}

func (s *stubSender) notified() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.subjects...)
}
