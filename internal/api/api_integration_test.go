package api

import (
	"context"
	"encoding/base64"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"items-backend/internal/auth"
	"items-backend/internal/database"
	"items-backend/internal/models"

	"github.com/stretchr/testify/require"
)

func TestAPI_SignupLoginLogoutScenario(t *testing.T) {
	email := uniqueEmail("scenario")

	signupResp := doRequest(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]any{
		"email":    email,
		"password": "Test123!",
		"name":     "A",
	})
	require.Equal(t, http.StatusCreated, signupResp.Code, string(signupResp.Raw))
	require.Equal(t, true, signupResp.Body["success"])
	firstToken, _ := signupResp.Body["token"].(string)
	require.NotEmpty(t, firstToken)

	var user models.User
	signupResp.decode(t, "user", &user)
	require.Equal(t, email, user.Email)
	require.Equal(t, "A", *user.DisplayName)
	require.NotContains(t, string(signupResp.Raw), "password_hash")
	require.Equal(t, 1, sessionCount(t, user.ID))

	loginResp := doRequest(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Email: email, Password: "Test123!"})
	require.Equal(t, http.StatusOK, loginResp.Code, string(loginResp.Raw))
	secondToken := loginResp.Body["token"].(string)
	require.NotEqual(t, firstToken, secondToken)
	require.Equal(t, 2, sessionCount(t, user.ID))

	logoutResp := doRequest(t, http.MethodPost, "/api/v1/auth/logout", firstToken, nil)
	require.Equal(t, http.StatusOK, logoutResp.Code)
	require.Equal(t, 1, sessionCount(t, user.ID))

	stale := doRequest(t, http.MethodGet, "/api/v1/users/me", firstToken, nil)
	require.Equal(t, http.StatusUnauthorized, stale.Code)
	require.Equal(t, "SESSION_EXPIRED", stale.errorCode())
	require.Equal(t, false, stale.Body["success"])

	live := doRequest(t, http.MethodGet, "/api/v1/users/me", secondToken, nil)
	require.Equal(t, http.StatusOK, live.Code)
}

func TestAPI_SignupValidation(t *testing.T) {
	cases := []struct {
		name string
		body map[string]any
		code int
	}{
		{"malformed email", map[string]any{"email": "not-an-email", "password": "Test123!"}, http.StatusBadRequest},
		{"display name form", map[string]any{"email": "A <a@b.com>", "password": "Test123!"}, http.StatusBadRequest},
		{"short password", map[string]any{"email": uniqueEmail("short"), "password": "short"}, http.StatusBadRequest},
		{"missing email", map[string]any{"password": "Test123!"}, http.StatusBadRequest},
		{"unknown field", map[string]any{"email": uniqueEmail("x"), "password": "Test123!", "admin": true}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, http.MethodPost, "/api/v1/auth/signup", "", tc.body)
			require.Equal(t, tc.code, resp.Code)
			require.Equal(t, CodeValidation, resp.errorCode())
		})
	}

	t.Run("duplicate email is case-insensitive", func(t *testing.T) {
		account := signup(t, "dup")
		resp := doRequest(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]any{
			"email":    strings.ToUpper(account.Email),
			"password": "Test123!",
		})
		require.Equal(t, http.StatusConflict, resp.Code)
		require.Equal(t, CodeConflict, resp.errorCode())
	})
}

func TestAPI_LoginFailuresAreIndistinguishable(t *testing.T) {
	account := signup(t, "login")

	wrongPassword := doRequest(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Email: account.Email, Password: "nope-nope"})
	unknownEmail := doRequest(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Email: uniqueEmail("ghost"), Password: "Test123!"})

	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	require.Equal(t, CodeInvalidCredentials, wrongPassword.errorCode())
	require.Equal(t, wrongPassword.Body, unknownEmail.Body)

	upper := doRequest(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Email: strings.ToUpper(account.Email), Password: account.Password})
	require.Equal(t, http.StatusOK, upper.Code)
}

func TestAPI_AuthErrorCodes(t *testing.T) {
	resp := doRequest(t, http.MethodGet, "/api/v1/users/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.Code)
	require.Equal(t, "NO_TOKEN", resp.errorCode())

	resp = doRequest(t, http.MethodGet, "/api/v1/users/me", "garbage.token.value", nil)
	require.Equal(t, http.StatusUnauthorized, resp.Code)
	require.Equal(t, "INVALID_TOKEN", resp.errorCode())
}

func TestAPI_Refresh(t *testing.T) {
	account := signup(t, "refresh")

	resp := doRequest(t, http.MethodPost, "/api/v1/auth/refresh", account.Token, nil)
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Raw))
	newToken := resp.Body["token"].(string)
	require.NotEqual(t, account.Token, newToken)
	require.Equal(t, 1, sessionCount(t, account.UserID))

	old := doRequest(t, http.MethodGet, "/api/v1/users/me", account.Token, nil)
	require.Equal(t, http.StatusUnauthorized, old.Code)
	require.Equal(t, "SESSION_EXPIRED", old.errorCode())

	fresh := doRequest(t, http.MethodGet, "/api/v1/users/me", newToken, nil)
	require.Equal(t, http.StatusOK, fresh.Code)
}

func TestAPI_ChangePassword(t *testing.T) {
	account := signup(t, "password")

	before, err := testServer.store.GetUserByID(context.Background(), account.UserID)
	require.NoError(t, err)

	resp := doRequest(t, http.MethodPut, "/api/v1/users/me/password", account.Token, ChangePasswordRequest{
		CurrentPassword: "wrong-password",
		NewPassword:     "NewPass123!",
	})
	require.Equal(t, http.StatusUnauthorized, resp.Code)
	require.Equal(t, CodeInvalidCredentials, resp.errorCode())

	unchanged, err := testServer.store.GetUserByID(context.Background(), account.UserID)
	require.NoError(t, err)
	require.Equal(t, before.PasswordHash, unchanged.PasswordHash)

	resp = doRequest(t, http.MethodPut, "/api/v1/users/me/password", account.Token, ChangePasswordRequest{
		CurrentPassword: account.Password,
		NewPassword:     "short",
	})
	require.Equal(t, http.StatusBadRequest, resp.Code)

	resp = doRequest(t, http.MethodPut, "/api/v1/users/me/password", account.Token, ChangePasswordRequest{
		CurrentPassword: account.Password,
		NewPassword:     "NewPass123!",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	login := doRequest(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Email: account.Email, Password: "NewPass123!"})
	require.Equal(t, http.StatusOK, login.Code)
	login = doRequest(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Email: account.Email, Password: account.Password})
	require.Equal(t, http.StatusUnauthorized, login.Code)
}

func TestAPI_UpdateProfile(t *testing.T) {
	account := signup(t, "profile")
	other := signup(t, "profile-other")

	resp := doRequest(t, http.MethodPut, "/api/v1/users/me", account.Token, map[string]any{
		"name":       "  Alice  ",
		"avatar_url": "https://cdn.example.com/a.png",
	})
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Raw))
	var user models.User
	resp.decode(t, "user", &user)
	require.Equal(t, "Alice", *user.DisplayName)
	require.Equal(t, "https://cdn.example.com/a.png", *user.AvatarURL)
	require.Equal(t, account.Email, user.Email)

	resp = doRequest(t, http.MethodPut, "/api/v1/users/me", account.Token, map[string]any{"email": other.Email})
	require.Equal(t, http.StatusConflict, resp.Code)

	resp = doRequest(t, http.MethodPut, "/api/v1/users/me", account.Token, map[string]any{})
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestAPI_DeleteAccount(t *testing.T) {
	account := signup(t, "delete")
	itemID := createItem(t, account.Token, "doomed")
	uploadKey := uploadFile(t, account.Token, itemID, "a.txt", []byte("bye"))

	resp := doRequest(t, http.MethodDelete, "/api/v1/users/me", account.Token, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	user, err := testServer.store.GetUserByID(context.Background(), account.UserID)
	require.NoError(t, err)
	require.Nil(t, user)

	item, err := testServer.store.GetItemByID(context.Background(), itemID)
	require.NoError(t, err)
	require.Nil(t, item)

	_, err = testStorage.Get(uploadKey)
	require.Error(t, err, "blob should be removed with the account")

	var leftover int
	err = testServer.store.GetPool().QueryRow(context.Background(),
		`SELECT (SELECT COUNT(*) FROM uploads WHERE user_id = $1) + (SELECT COUNT(*) FROM sessions WHERE user_id = $1)`,
		account.UserID,
	).Scan(&leftover)
	require.NoError(t, err)
	require.Zero(t, leftover)

	resp = doRequest(t, http.MethodGet, "/api/v1/users/me", account.Token, nil)
	require.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestAPI_Sessions(t *testing.T) {
	account := signup(t, "sessions")
	login := doRequest(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Email: account.Email, Password: account.Password})
	require.Equal(t, http.StatusOK, login.Code)
	secondToken := login.Body["token"].(string)

	resp := doRequest(t, http.MethodGet, "/api/v1/sessions", account.Token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var sessions []models.Session
	resp.decode(t, "sessions", &sessions)
	require.Len(t, sessions, 2)

	var other *models.Session
	currentCount := 0
	for i := range sessions {
		require.Equal(t, "api-test", sessions[i].UserAgent)
		if sessions[i].Current {
			currentCount++
		} else {
			other = &sessions[i]
		}
	}
	require.Equal(t, 1, currentCount)
	require.NotNil(t, other)

	resp = doRequest(t, http.MethodDelete, "/api/v1/sessions/not-a-uuid", account.Token, nil)
	require.Equal(t, http.StatusBadRequest, resp.Code)

	resp = doRequest(t, http.MethodDelete, "/api/v1/sessions/"+other.ID.String(), account.Token, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = doRequest(t, http.MethodDelete, "/api/v1/sessions/"+other.ID.String(), account.Token, nil)
	require.Equal(t, http.StatusNotFound, resp.Code)

	resp = doRequest(t, http.MethodGet, "/api/v1/users/me", secondToken, nil)
	require.Equal(t, "SESSION_EXPIRED", resp.errorCode())

	// A third session, then log out everywhere.
	login = doRequest(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Email: account.Email, Password: account.Password})
	require.Equal(t, http.StatusOK, login.Code)

	resp = doRequest(t, http.MethodPost, "/api/v1/sessions/terminate_all", account.Token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.EqualValues(t, 2, resp.Body["terminated"])
	require.Zero(t, sessionCount(t, account.UserID))

	resp = doRequest(t, http.MethodGet, "/api/v1/users/me", account.Token, nil)
	require.Equal(t, http.StatusUnauthorized, resp.Code)
}

func createItem(t *testing.T, token, name string) string {
	t.Helper()
	resp := doRequest(t, http.MethodPost, "/api/v1/items", token, CreateItemRequest{Name: name})
	require.Equal(t, http.StatusCreated, resp.Code, string(resp.Raw))
	var item models.Item
	resp.decode(t, "item", &item)
	return item.ID
}

func uploadFile(t *testing.T, token, itemID, filename string, content []byte) string {
	t.Helper()
	resp := doRequest(t, http.MethodPost, "/api/v1/items/"+itemID+"/upload", token, UploadRequest{
		Filename: filename,
		Data:     base64.StdEncoding.EncodeToString(content),
	})
	require.Equal(t, http.StatusCreated, resp.Code, string(resp.Raw))
	var upload models.Upload
	resp.decode(t, "upload", &upload)

	uploads, err := testServer.store.ListUploadsForItem(context.Background(), itemID)
	require.NoError(t, err)
	for _, u := range uploads {
		if u.ID == upload.ID {
			return u.StorageKey
		}
	}
	t.Fatalf("upload %s not stored", upload.ID)
	return ""
}

func TestAPI_ItemOwnership(t *testing.T) {
	a := signup(t, "owner-a")
	b := signup(t, "owner-b")

	itemID := createItem(t, a.Token, "X")

	resp := doRequest(t, http.MethodDelete, "/api/v1/items/"+itemID, b.Token, nil)
	require.Equal(t, http.StatusForbidden, resp.Code)
	require.Equal(t, CodeForbidden, resp.errorCode())

	resp = doRequest(t, http.MethodPut, "/api/v1/items/"+itemID, b.Token, UpdateItemRequest{Name: strPtr("hijacked")})
	require.Equal(t, http.StatusForbidden, resp.Code)

	resp = doRequest(t, http.MethodGet, "/api/v1/items/"+itemID, b.Token, nil)
	require.Equal(t, http.StatusForbidden, resp.Code)

	resp = doRequest(t, http.MethodGet, "/api/v1/items/"+itemID, "", nil)
	require.Equal(t, http.StatusForbidden, resp.Code)

	resp = doRequest(t, http.MethodPost, "/api/v1/items/"+itemID+"/upload", b.Token, UploadRequest{
		Filename: "x.txt",
		Data:     base64.StdEncoding.EncodeToString([]byte("x")),
	})
	require.Equal(t, http.StatusForbidden, resp.Code)

	resp = doRequest(t, http.MethodGet, "/api/v1/items/"+itemID, a.Token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var item models.Item
	resp.decode(t, "item", &item)
	require.Equal(t, "X", item.Name)
}

func TestAPI_PublicItems(t *testing.T) {
	a := signup(t, "public")

	public, err := testServer.store.CreateItem(context.Background(), database.CreateItemParams{
		ID:   "public-item-" + strings.ReplaceAll(uniqueEmail("p")[:20], "@", "_"),
		Name: "legacy",
	})
	require.NoError(t, err)

	resp := doRequest(t, http.MethodGet, "/api/v1/items/"+public.ID, "", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = doRequest(t, http.MethodGet, "/api/v1/items/"+public.ID, a.Token, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = doRequest(t, http.MethodDelete, "/api/v1/items/"+public.ID, a.Token, nil)
	require.Equal(t, http.StatusForbidden, resp.Code, "nobody owns a public item")

	privateID := createItem(t, a.Token, "mine")

	anon := doRequest(t, http.MethodGet, "/api/v1/items?limit=1000", "", nil)
	require.Equal(t, http.StatusOK, anon.Code)
	require.EqualValues(t, anonymousListLimit, anon.Body["limit"])
	var anonItems []models.Item
	anon.decode(t, "items", &anonItems)
	for _, it := range anonItems {
		require.Nil(t, it.UserID)
		require.NotEqual(t, privateID, it.ID)
	}

	authed := doRequest(t, http.MethodGet, "/api/v1/items?limit=1000", a.Token, nil)
	require.Equal(t, http.StatusOK, authed.Code)
	require.EqualValues(t, maxListLimit, authed.Body["limit"])
	var authedItems []models.Item
	authed.decode(t, "items", &authedItems)
	found := false
	for _, it := range authedItems {
		if it.ID == privateID {
			found = true
		}
	}
	require.True(t, found)

	resp = doRequest(t, http.MethodGet, "/api/v1/items?limit=abc", "", nil)
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func testStorageDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.Abs(testStorageBase)
	require.NoError(t, err)
	return dir
}

func strPtr(s string) *string {
	return &s
}

func TestAPI_ItemCRUD(t *testing.T) {
	a := signup(t, "crud")

	resp := doRequest(t, http.MethodPost, "/api/v1/items", a.Token, CreateItemRequest{Name: "   "})
	require.Equal(t, http.StatusBadRequest, resp.Code)

	resp = doRequest(t, http.MethodPost, "/api/v1/items", "", CreateItemRequest{Name: "anon"})
	require.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = doRequest(t, http.MethodPost, "/api/v1/items", a.Token, CreateItemRequest{
		Name:        "Widget",
		Description: strPtr("first"),
		Metadata:    map[string]any{"color": "red"},
	})
	require.Equal(t, http.StatusCreated, resp.Code)
	var created models.Item
	resp.decode(t, "item", &created)
	require.Len(t, created.ID, idLength)
	require.Equal(t, a.UserID, *created.UserID)
	require.Equal(t, "red", created.Metadata["color"])

	resp = doRequest(t, http.MethodPut, "/api/v1/items/"+created.ID, a.Token, UpdateItemRequest{Description: strPtr("second")})
	require.Equal(t, http.StatusOK, resp.Code)
	var updated models.Item
	resp.decode(t, "item", &updated)
	require.Equal(t, "Widget", updated.Name)
	require.Equal(t, "second", *updated.Description)
	require.Equal(t, "red", updated.Metadata["color"])

	resp = doRequest(t, http.MethodPut, "/api/v1/items/"+created.ID, a.Token, map[string]any{})
	require.Equal(t, http.StatusBadRequest, resp.Code)

	resp = doRequest(t, http.MethodPut, "/api/v1/items/missing-item-id", a.Token, UpdateItemRequest{Name: strPtr("x")})
	require.Equal(t, http.StatusNotFound, resp.Code)

	resp = doRequest(t, http.MethodDelete, "/api/v1/items/"+created.ID, a.Token, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = doRequest(t, http.MethodGet, "/api/v1/items/"+created.ID, a.Token, nil)
	require.Equal(t, http.StatusNotFound, resp.Code)
	require.Equal(t, CodeNotFound, resp.errorCode())
}

func TestAPI_UploadAndCleanup(t *testing.T) {
	a := signup(t, "upload")
	itemID := createItem(t, a.Token, "with files")

	content := []byte("hello upload")
	resp := doRequest(t, http.MethodPost, "/api/v1/items/"+itemID+"/upload", a.Token, UploadRequest{
		Filename:    "../My Notes.txt",
		ContentType: "text/plain",
		Data:        base64.StdEncoding.EncodeToString(content),
	})
	require.Equal(t, http.StatusCreated, resp.Code, string(resp.Raw))
	var upload models.Upload
	resp.decode(t, "upload", &upload)
	require.Equal(t, itemID, upload.ItemID)
	require.Equal(t, int64(len(content)), upload.FileSize)
	require.Equal(t, "text/plain", upload.ContentType)
	require.Contains(t, upload.FileURL, "/files/items/"+itemID+"/")
	require.True(t, strings.HasSuffix(upload.FileURL, "-My_Notes.txt"), upload.FileURL)

	key := strings.TrimPrefix(upload.FileURL, "/files/")
	blob, err := testStorage.Get(key)
	require.NoError(t, err)
	blob.Close()

	served := doRequest(t, http.MethodGet, upload.FileURL, "", nil)
	require.Equal(t, http.StatusOK, served.Code)
	require.Equal(t, content, served.Raw)

	anonList := doRequest(t, http.MethodGet, "/api/v1/items/"+itemID+"/uploads", "", nil)
	require.Equal(t, http.StatusForbidden, anonList.Code)

	list := doRequest(t, http.MethodGet, "/api/v1/items/"+itemID+"/uploads", a.Token, nil)
	require.Equal(t, http.StatusOK, list.Code)
	var uploads []models.Upload
	list.decode(t, "uploads", &uploads)
	require.Len(t, uploads, 1)

	// A blob that is already gone must not block deleting the item.
	orphanKey := uploadFile(t, a.Token, itemID, "second.txt", []byte("second"))
	orphanPath := filepath.Join(testStorageDir(t), filepath.FromSlash(orphanKey))
	require.NoError(t, os.Remove(orphanPath))

	resp = doRequest(t, http.MethodDelete, "/api/v1/items/"+itemID, a.Token, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	_, err = testStorage.Get(key)
	require.Error(t, err, "blob should be deleted with the item")
}

func TestAPI_UploadValidation(t *testing.T) {
	a := signup(t, "upload-bad")
	itemID := createItem(t, a.Token, "target")

	resp := doRequest(t, http.MethodPost, "/api/v1/items/"+itemID+"/upload", a.Token, UploadRequest{Filename: "a.txt", Data: "!!!not base64!!!"})
	require.Equal(t, http.StatusBadRequest, resp.Code)

	resp = doRequest(t, http.MethodPost, "/api/v1/items/"+itemID+"/upload", a.Token, UploadRequest{Data: "aGk="})
	require.Equal(t, http.StatusBadRequest, resp.Code)

	tooBig := make([]byte, testServer.config.Upload.MaxBytes+1)
	resp = doRequest(t, http.MethodPost, "/api/v1/items/"+itemID+"/upload", a.Token, UploadRequest{
		Filename: "big.bin",
		Data:     base64.StdEncoding.EncodeToString(tooBig),
	})
	require.Equal(t, http.StatusRequestEntityTooLarge, resp.Code)

	resp = doRequest(t, http.MethodPost, "/api/v1/items/"+itemID+"/upload", a.Token, UploadRequest{
		Filename: "pixel",
		Data:     "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("\x89PNG\r\n\x1a\n")),
	})
	require.Equal(t, http.StatusCreated, resp.Code, string(resp.Raw))
	var upload models.Upload
	resp.decode(t, "upload", &upload)
	require.Equal(t, "image/png", upload.ContentType)
}

func TestAPI_Events(t *testing.T) {
	a := signup(t, "events")

	resp := doRequest(t, http.MethodGet, "/api/v1/events", a.Token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var events []database.Event
	resp.decode(t, "events", &events)
	require.Empty(t, events)

	itemID := createItem(t, a.Token, "evented")

	resp = doRequest(t, http.MethodGet, "/api/v1/events?since=0", a.Token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	resp.decode(t, "events", &events)
	require.Len(t, events, 1)
	require.Equal(t, database.EventItemCreated, events[0].EventType)
	require.Contains(t, string(events[0].Payload), itemID)

	resp = doRequest(t, http.MethodGet, "/api/v1/events?since=abc", a.Token, nil)
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestAPI_Health(t *testing.T) {
	resp := doRequest(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "ok", resp.Body["status"])
	components := resp.Body["components"].(map[string]any)
	require.Contains(t, components, "database")
	require.Contains(t, components, "storage")
}

func TestAPI_UnknownRoute(t *testing.T) {
	resp := doRequest(t, http.MethodGet, "/api/v1/nope", "", nil)
	require.Equal(t, http.StatusNotFound, resp.Code)
	require.Equal(t, CodeNotFound, resp.errorCode())
}

func TestAPI_ValidateAgainstStoreEveryRequest(t *testing.T) {
	a := signup(t, "revoke-direct")

	claims, err := auth.VerifyJWT(a.Token, testSecret)
	require.NoError(t, err)

	removed, err := testServer.store.DeleteSessionByTokenID(context.Background(), claims.TokenID())
	require.NoError(t, err)
	require.True(t, removed)

	resp := doRequest(t, http.MethodGet, "/api/v1/users/me", a.Token, nil)
	require.Equal(t, "SESSION_EXPIRED", resp.errorCode())
}
