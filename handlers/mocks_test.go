package handlers_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"inkwell/assets"
	"inkwell/config"
	"inkwell/handlers"
	"inkwell/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserStore) FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	args := m.Called(ctx, username, email)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserStore) TakenByOther(ctx context.Context, id primitive.ObjectID, username, email string) (*models.User, error) {
	args := m.Called(ctx, id, username, email)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserStore) FindManyByID(ctx context.Context, ids []primitive.ObjectID) (map[string]*models.User, error) {
	args := m.Called(ctx, ids)
	if u := args.Get(0); u != nil {
		return u.(map[string]*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserStore) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.User, error) {
	args := m.Called(ctx, id, fields)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPostStore struct {
	mock.Mock
}

func (m *MockPostStore) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*models.Post), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostStore) FindAll(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	if p := args.Get(0); p != nil {
		return p.([]models.Post), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostStore) FindByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]models.Post, error) {
	args := m.Called(ctx, authorID)
	if p := args.Get(0); p != nil {
		return p.([]models.Post), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostStore) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Post, error) {
	args := m.Called(ctx, id, fields)
	if p := args.Get(0); p != nil {
		return p.(*models.Post), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostStore) DeleteByAuthor(ctx context.Context, authorID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).(int64), args.Error(1)
}

type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, file multipart.File, folder string) (assets.Asset, error) {
	args := m.Called(ctx, file, folder)
	return args.Get(0).(assets.Asset), args.Error(1)
}

func (m *MockUploader) Delete(ctx context.Context, fileID string) error {
	args := m.Called(ctx, fileID)
	return args.Error(0)
}

type testEnv struct {
	users   *MockUserStore
	posts   *MockPostStore
	uploads *MockUploader
	handler *handlers.Handler
}

func newTestEnv() *testEnv {
	users := new(MockUserStore)
	posts := new(MockPostStore)
	uploads := new(MockUploader)

	cfg := &config.Config{
		JWTSecret: "test-secret-key",
		GinMode:   "debug",
	}

	return &testEnv{
		users:   users,
		posts:   posts,
		uploads: uploads,
		handler: handlers.New(users, posts, uploads, cfg),
	}
}

// testContext builds a gin context around the request, optionally with
// an authenticated user id, the way the auth middleware would leave it.
func testContext(req *http.Request, userID string) (*gin.Context, *httptest.ResponseRecorder) {
	rr := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rr)
	c.Request = req
	if userID != "" {
		c.Set("userId", userID)
	}
	return c, rr
}

type filePart struct {
	field       string
	name        string
	contentType string
	size        int
}

// multipartRequest builds a multipart form request with text fields and
// an optional file part carrying an explicit Content-Type.
func multipartRequest(t *testing.T, method, target string, fields map[string]string, file *filePart) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}

	if file != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="%s"; filename="%s"`, file.field, file.name))
		header.Set("Content-Type", file.contentType)

		part, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("create file part: %v", err)
		}
		if _, err := io.CopyN(part, bytes.NewReader(bytes.Repeat([]byte{0xAB}, file.size)), int64(file.size)); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func assetFixture(fileID, url string) assets.Asset {
	return assets.Asset{FileID: fileID, URL: url}
}

func tokenCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == "token" {
			return cookie
		}
	}
	return nil
}
