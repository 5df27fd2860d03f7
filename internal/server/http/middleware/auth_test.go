package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	pkgAuth "github.com/tinoe0404/eTuckshop-sub000/internal/pkg/auth"
	testhelpers "github.com/tinoe0404/eTuckshop-sub000/internal/test"
)

func newAuthRouter(parser TokenParser) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthRequired(parser), func(c *gin.Context) {
		id, _ := c.Get(UserIDContextKey)
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})
	return router
}

func TestAuthRequiredBearerHeader(t *testing.T) {
	router := newAuthRouter(testhelpers.TokenParserStub{ID: 7})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestAuthRequiredCookie(t *testing.T) {
	parser := testhelpers.TokenParserStub{
		ParseFn: func(token string) (int64, error) {
			if token != "cookie-token" {
				t.Fatalf("unexpected token %q", token)
			}
			return 7, nil
		},
	}
	router := newAuthRouter(parser)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "tuckshop_token", Value: "cookie-token"})
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestAuthRequiredMissingToken(t *testing.T) {
	router := newAuthRouter(testhelpers.TokenParserStub{ID: 7})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuthRequiredInvalidToken(t *testing.T) {
	router := newAuthRouter(testhelpers.TokenParserStub{Err: pkgAuth.ErrInvalidToken})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bad")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuthRequiredParserFailure(t *testing.T) {
	router := newAuthRouter(testhelpers.TokenParserStub{Err: errors.New("backend down")})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer token")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestSetAuthCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	SetAuthCookie(c, "tok")

	if got := rec.Header().Get("Authorization"); got != "Bearer tok" {
		t.Fatalf("Authorization = %q, want Bearer tok", got)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "tuckshop_token" || cookies[0].Value != "tok" {
		t.Fatalf("unexpected cookies: %+v", cookies)
	}
	if !cookies[0].HttpOnly {
		t.Fatal("auth cookie must be http-only")
	}
}
