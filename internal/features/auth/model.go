package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleUser      = "user"
	RoleGuide     = "guide"
	RoleLeadGuide = "lead-guide"
	RoleAdmin     = "admin"
)

// bcrypt cost for passwords at rest
const passwordCost = 12

// resetTokenTTL bounds how long a password reset link stays valid.
const resetTokenTTL = 10 * time.Minute

// User is the account document. Password material is bson-only and never
// serialized into responses.
type User struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
	Photo string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Role  string             `bson:"role" json:"role"`

	Password             string     `bson:"password,omitempty" json:"-"`
	PasswordChangedAt    *time.Time `bson:"passwordChangedAt,omitempty" json:"-"`
	PasswordResetToken   string     `bson:"passwordResetToken,omitempty" json:"-"`
	PasswordResetExpires *time.Time `bson:"passwordResetExpires,omitempty" json:"-"`

	Active    bool      `bson:"active" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"-"`
}

// SetPassword stores the bcrypt hash of plaintext on the user.
func (u *User) SetPassword(plaintext string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), passwordCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

// CorrectPassword compares a candidate against the stored hash.
func (u *User) CorrectPassword(candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(candidate)) == nil
}

// ChangedPasswordAfter reports whether the password changed after the given
// token issue time. Tokens issued before a change are rejected.
func (u *User) ChangedPasswordAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	// truncate both to seconds; JWT iat has second precision
	return issuedAt.Unix() < u.PasswordChangedAt.Unix()
}

// CreatePasswordResetToken generates a random token, stores its sha256 hash
// and expiry on the user, and returns the plaintext for the email. Only the
// hash is ever persisted.
func (u *User) CreatePasswordResetToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	plaintext := hex.EncodeToString(raw)

	u.PasswordResetToken = HashResetToken(plaintext)
	expires := time.Now().Add(resetTokenTTL)
	u.PasswordResetExpires = &expires

	return plaintext, nil
}

// HashResetToken is the lookup hash for reset tokens. A plain sha256 is
// enough here given the 10 minute lifetime.
func HashResetToken(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

type SignupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

type UpdatePasswordRequest struct {
	PasswordCurrent string `json:"passwordCurrent"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}
