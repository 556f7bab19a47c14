package handlers_test

import (
	"bytes"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eurum-fi/eurum/handlers"
	"github.com/eurum-fi/eurum/ledger"
	"github.com/eurum-fi/eurum/logger"
)

func init() {
	logger.InitLogger("test")
	gin.SetMode(gin.TestMode)
}

var (
	owner  = common.HexToAddress("0x1000000000000000000000000000000000000001")
	admin  = common.HexToAddress("0x1000000000000000000000000000000000000002")
	master = common.HexToAddress("0x1000000000000000000000000000000000000003")
	alice  = common.HexToAddress("0x2000000000000000000000000000000000000001")
	bob    = common.HexToAddress("0x2000000000000000000000000000000000000002")
)

func newTestRouter(t *testing.T) (*gin.Engine, *ledger.Token) {
	t.Helper()
	token := ledger.NewToken(ledger.Config{
		Name:     "EURM",
		Symbol:   "EURM",
		Decimals: 6,
		ChainID:  big.NewInt(1),
		Address:  common.HexToAddress("0x4000000000000000000000000000000000000001"),
		Owner:    owner,
	})
	require.NoError(t, token.SetAdministrator(owner, admin))
	require.NoError(t, token.SetMasterIssuer(owner, master))
	require.NoError(t, token.Mint(master, alice, big.NewInt(1000)))

	h := handlers.NewTokenHandler(token)
	r := gin.New()
	r.GET("/token", h.GetTokenInfo)
	r.GET("/accounts/:address/balance", h.GetBalance)
	r.POST("/transfers", h.Transfer)
	r.POST("/mint", h.Mint)
	return r, token
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTokenHandler_GetTokenInfo(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/token", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "EURM", resp["name"])
	assert.Equal(t, "1000", resp["total_supply"])
}

func TestTokenHandler_GetBalance(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/accounts/"+alice.Hex()+"/balance", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "1000", resp["balance"])

	w = doJSON(t, r, http.MethodGet, "/accounts/not-an-address/balance", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTokenHandler_Transfer(t *testing.T) {
	r, token := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/transfers", gin.H{
		"caller": alice.Hex(),
		"to":     bob.Hex(),
		"amount": "100",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, big.NewInt(100), token.BalanceOf(bob))
}

func TestTokenHandler_Transfer_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		body       gin.H
		setup      func(t *testing.T, token *ledger.Token)
		wantStatus int
	}{
		{
			name:       "missing field rejected by binding",
			body:       gin.H{"caller": alice.Hex(), "amount": "100"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed amount",
			body:       gin.H{"caller": alice.Hex(), "to": bob.Hex(), "amount": "ten"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "insufficient balance",
			body:       gin.H{"caller": alice.Hex(), "to": bob.Hex(), "amount": "5000"},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "blacklisted recipient",
			body: gin.H{"caller": alice.Hex(), "to": bob.Hex(), "amount": "10"},
			setup: func(t *testing.T, token *ledger.Token) {
				require.NoError(t, token.Blacklist(admin, bob))
			},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, token := newTestRouter(t)
			if tt.setup != nil {
				tt.setup(t, token)
			}
			w := doJSON(t, r, http.MethodPost, "/transfers", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestTokenHandler_Mint_Unauthorized(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/mint", gin.H{
		"caller": alice.Hex(),
		"to":     bob.Hex(),
		"amount": "100",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
