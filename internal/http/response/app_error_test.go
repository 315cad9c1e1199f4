package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestAsAppErrorFindsWrapped(t *testing.T) {
	appErr := WrapError(CodeBadRequest, "bad input", errors.New("missing field"))
	wrapped := fmt.Errorf("handler: %w", appErr)

	got := AsAppError(wrapped)
	if got != appErr {
		t.Fatalf("want wrapped AppError got %+v", got)
	}
	if got.Error() != "bad input: missing field" {
		t.Fatalf("unexpected message: %s", got.Error())
	}
}

func TestAsAppErrorDefaultsToInternal(t *testing.T) {
	cause := errors.New("boom")
	got := AsAppError(cause)
	if got.Code != CodeInternal {
		t.Fatalf("code want %d got %d", CodeInternal, got.Code)
	}
	if !errors.Is(got, cause) {
		t.Fatalf("internal AppError should unwrap to cause")
	}
}

func TestFailWritesDataAndRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(requestIDKey, "req-1")

	Fail(c, WrapError(CodeBusinessFailed, "gateway business failed", nil).WithData(gin.H{"sub_msg": "交易不存在"}))

	var resp struct {
		StatusCode int               `json:"status_code"`
		Msg        string            `json:"msg"`
		Data       map[string]string `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != CodeBusinessFailed || resp.Msg != "gateway business failed" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	if resp.Data["sub_msg"] != "交易不存在" || resp.Data["request_id"] != "req-1" {
		t.Fatalf("unexpected data: %v", resp.Data)
	}
}
