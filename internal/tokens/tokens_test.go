package tokens

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"portfolio-api/internal/models"
)

const testSecret = "test-secret-32-bytes-should-be-long-enough"

func testUser() *models.User {
	return &models.User{
		ID:    primitive.NewObjectID(),
		Email: "admin@example.com",
		Name:  "Admin",
		Role:  "admin",
	}
}

func TestGenerateAndVerify(t *testing.T) {
	u := testUser()
	tok, err := GenerateAccessToken(testSecret, u, 2*time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}

	claims, err := VerifyAccessToken(testSecret, tok)
	if err != nil {
		t.Fatalf("VerifyAccessToken error: %v", err)
	}
	if claims.UserID != u.ID.Hex() {
		t.Fatalf("unexpected sub claim: got=%v want=%v", claims.UserID, u.ID.Hex())
	}
	if claims.Role != "admin" || claims.Email != u.Email {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerify_Expired(t *testing.T) {
	tok, err := GenerateAccessToken(testSecret, testUser(), -time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}
	if _, err := VerifyAccessToken(testSecret, tok); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestVerify_WrongSecretFails(t *testing.T) {
	tok, err := GenerateAccessToken(testSecret, testUser(), 2*time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}
	if _, err := VerifyAccessToken("different-secret-xxxxxxxxxxxxxxxx", tok); err == nil {
		t.Fatalf("expected verification to fail with wrong secret")
	}
}

func TestVerify_Malformed(t *testing.T) {
	if _, err := VerifyAccessToken(testSecret, "not.a.jwt"); err == nil {
		t.Fatalf("expected malformed token to be rejected")
	}
}

// Rejected when alg=none (unsigned token)
func TestVerify_AlgNoneRejected(t *testing.T) {
	headerEnc := (&jwt.Token{}).EncodeSegment([]byte(`{"alg":"none"}`))
	payloadEnc := (&jwt.Token{}).EncodeSegment([]byte(`{"sub":"u-none","exp":9999999999}`))
	tok := headerEnc + "." + payloadEnc + "."
	if _, err := VerifyAccessToken(testSecret, tok); err == nil {
		t.Fatalf("expected alg=none token to be rejected")
	}
}

// Tampering with the payload must fail signature verification
func TestVerify_TamperedPayload(t *testing.T) {
	u := testUser()
	tok, err := GenerateAccessToken(testSecret, u, 5*time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token parts")
	}
	payloadBytes, _ := jwt.NewParser().DecodeSegment(parts[1])
	payload := strings.Replace(string(payloadBytes), `"role":"admin"`, `"role":"owner"`, 1)
	parts[1] = (&jwt.Token{}).EncodeSegment([]byte(payload))
	if _, err := VerifyAccessToken(testSecret, strings.Join(parts, ".")); err == nil {
		t.Fatalf("expected signature verification to fail for tampered token")
	}
}
