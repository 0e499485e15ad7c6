package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-marketplace/utils"
)

func TestVerifyAdminOTP_WrongCode(t *testing.T) {
	store := utils.NewOTPStore(time.Minute)
	code, err := store.Issue("new-admin@x.com")
	require.NoError(t, err)

	uc := &UserController{OTPStore: store}

	wrong := "000000"
	if wrong == code {
		wrong = "999999"
	}
	body := fmt.Sprintf(`{"email":"new-admin@x.com","otp":"%s","name":"Bob","password":"secret","city":"Pune"}`, wrong)
	rec := postJSON(t, uc.VerifyAdminOTP, "/api/verify-admin-otp", body)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "Invalid OTP", resp["message"])

	assert.True(t, store.Pending("new-admin@x.com"), "wrong guess must not consume the issued code")
}

func TestVerifyAdminOTP_NoIssuedCode(t *testing.T) {
	uc := &UserController{OTPStore: utils.NewOTPStore(time.Minute)}

	body := `{"email":"nobody@x.com","otp":"123456","name":"Bob","password":"secret","city":"Pune"}`
	rec := postJSON(t, uc.VerifyAdminOTP, "/api/verify-admin-otp", body)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestVerifyAdminOTP_MissingFields(t *testing.T) {
	uc := &UserController{OTPStore: utils.NewOTPStore(time.Minute)}

	rec := postJSON(t, uc.VerifyAdminOTP, "/api/verify-admin-otp", `{"email":"new-admin@x.com","otp":"123456"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_InvalidInput(t *testing.T) {
	uc := &UserController{}

	rec := postJSON(t, uc.Register, "/api/register", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, uc.Register, "/api/register", `{"name":"Alice","email":"bad-email","password":"pw","city":"Pune"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, uc.Register, "/api/register", `{"email":"alice@x.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_InvalidInput(t *testing.T) {
	uc := &UserController{}

	rec := postJSON(t, uc.Login, "/api/login", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, uc.Login, "/api/login", `{"email":"alice@x.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
