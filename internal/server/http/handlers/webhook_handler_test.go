package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	testhelpers "github.com/tinoe0404/eTuckshop-sub000/internal/test"
)

func newWebhookRouter(queue Enqueuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewWebhookHandler(queue, "verify-me")
	router.GET("/webhook", handler.Verify)
	router.POST("/webhook", handler.Receive)
	return router
}

func TestWebhookVerifyHandshake(t *testing.T) {
	router := newWebhookRouter(&testhelpers.EnqueuerStub{})

	cases := []struct {
		name   string
		query  string
		status int
		body   string
	}{
		{"accepted", "hub.mode=subscribe&hub.verify_token=verify-me&hub.challenge=12345", http.StatusOK, "12345"},
		{"wrong token", "hub.mode=subscribe&hub.verify_token=nope&hub.challenge=12345", http.StatusForbidden, ""},
		{"wrong mode", "hub.mode=unsubscribe&hub.verify_token=verify-me&hub.challenge=12345", http.StatusForbidden, ""},
		{"missing challenge", "hub.mode=subscribe&hub.verify_token=verify-me", http.StatusForbidden, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/webhook?"+tc.query, nil)
			router.ServeHTTP(rec, req)

			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			if tc.body != "" && rec.Body.String() != tc.body {
				t.Fatalf("body = %q, want %q", rec.Body.String(), tc.body)
			}
		})
	}
}

func TestWebhookReceiveEnqueuesTextMessages(t *testing.T) {
	queue := &testhelpers.EnqueuerStub{}
	router := newWebhookRouter(queue)

	body := `{
		"object": "whatsapp_business_account",
		"entry": [{
			"id": "entry-1",
			"changes": [{
				"field": "messages",
				"value": {
					"contacts": [{"wa_id": "27820000001", "profile": {"name": "Alice"}}],
					"messages": [
						{"id": "wamid.1", "from": "27820000001", "type": "text", "text": {"body": "hi"}},
						{"id": "wamid.2", "from": "27820000001", "type": "image"}
					]
				}
			}]
		}]
	}`

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	queued := queue.Queued()
	if len(queued) != 1 {
		t.Fatalf("expected one queued message, got %d", len(queued))
	}
	if queued[0].Sender != "27820000001" || queued[0].Text != "hi" || queued[0].MessageID != "wamid.1" {
		t.Fatalf("unexpected queued message: %+v", queued[0])
	}
}

func TestWebhookReceiveAcknowledgesMalformedBody(t *testing.T) {
	queue := &testhelpers.EnqueuerStub{}
	router := newWebhookRouter(queue)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("malformed delivery must still be acknowledged, got %d", rec.Code)
	}
	if len(queue.Queued()) != 0 {
		t.Fatal("nothing should be queued for a malformed delivery")
	}
}

func TestWebhookReceiveSurvivesFullQueue(t *testing.T) {
	queue := &testhelpers.EnqueuerStub{Reject: true}
	router := newWebhookRouter(queue)

	body := `{"entry":[{"changes":[{"value":{"messages":[{"id":"wamid.1","from":"1","type":"text","text":{"body":"hi"}}]}}]}]}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("dropped message must still be acknowledged, got %d", rec.Code)
	}
}
