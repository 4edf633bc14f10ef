package user

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"
	"Recipe-Share-Backend/internal/utils/storage"
	"Recipe-Share-Backend/pkg/jwt"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.User{}, &entities.Recipe{}, &entities.CookingSession{}))
	return db
}

func newTestService(t *testing.T) (UserService, UserRepository) {
	t.Helper()
	db := newTestDB(t)
	local, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	repo := NewUserRepository(db)
	svc := NewUserService(repo, jwt.NewJWTServiceWith("test-secret", time.Hour), local)
	return svc, repo
}

func makeFileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(int64(len(content)) + 1024)
	require.NoError(t, err)
	return form.File["file"][0]
}

func registerReq() domain.RegisterRequest {
	return domain.RegisterRequest{
		Username: "cook",
		Email:    "cook@example.com",
		Password: "secret123",
		Bio:      "I like pasta",
	}
}

func TestRegister(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.NotEmpty(t, res.User.ID)
	assert.Equal(t, "cook", res.User.Username)
	assert.Equal(t, "cook@example.com", res.User.Email)
	assert.Equal(t, "I like pasta", res.User.Bio)
}

func TestRegisterNormalizesIdentifiers(t *testing.T) {
	svc, repo := newTestService(t)

	req := registerReq()
	req.Username = "  cook  "
	req.Email = "  Cook@Example.COM "

	res, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "cook", res.User.Username)
	assert.Equal(t, "cook@example.com", res.User.Email)

	_, err = repo.FindByEmail(context.Background(), "cook@example.com")
	assert.NoError(t, err)
}

func TestRegisterPasswordTooShort(t *testing.T) {
	svc, _ := newTestService(t)

	req := registerReq()
	req.Password = "12345"

	_, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	req := registerReq()
	req.Username = "othercook"
	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	req := registerReq()
	req.Email = "other@example.com"
	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrUsernameAlreadyTaken)
}

func TestRegisterProfileImage(t *testing.T) {
	svc, _ := newTestService(t)

	req := registerReq()
	req.ProfileImage = makeFileHeader(t, "avatar.png", "image/png", []byte("png-bytes"))

	res, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.User.ProfileImage, "/uploads/profiles/"))
	assert.True(t, strings.HasSuffix(res.User.ProfileImage, ".png"))
}

func TestRegisterRejectsBadImageType(t *testing.T) {
	svc, _ := newTestService(t)

	req := registerReq()
	req.ProfileImage = makeFileHeader(t, "avatar.gif", "image/gif", []byte("gif-bytes"))

	_, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidImageType)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	res, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "Cook@Example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "cook", res.User.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), domain.LoginRequest{
		Email:    "cook@example.com",
		Password: "wrongpass",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "ghost@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestFindSanitizedByIDOmitsPasswordHash(t *testing.T) {
	svc, repo := newTestService(t)

	res, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	u, err := repo.FindSanitizedByID(context.Background(), res.User.ID)
	require.NoError(t, err)
	assert.Empty(t, u.PasswordHash)
	assert.Equal(t, "cook", u.Username)
}
