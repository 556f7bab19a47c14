package handlers

import (
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/eurum-fi/eurum/helpers"
	"github.com/eurum-fi/eurum/ledger"
	"github.com/eurum-fi/eurum/types/api/requests"
	"github.com/eurum-fi/eurum/types/api/responses"
)

// TokenHandler handles balance, allowance and issuance operations
type TokenHandler struct {
	token *ledger.Token
}

// NewTokenHandler creates a handler bound to a token instance
func NewTokenHandler(token *ledger.Token) *TokenHandler {
	return &TokenHandler{token: token}
}

// GetTokenInfo godoc
// @Summary Get token info
// @Description Token identity, supply, fee rate and pause state
// @Tags token
// @Produce json
// @Success 200 {object} responses.TokenInfoResponse
// @Router /token [get]
func (h *TokenHandler) GetTokenInfo(c *gin.Context) {
	sendSuccess(c, http.StatusOK, responses.TokenInfoResponse{
		Name:        h.token.Name(),
		Symbol:      h.token.Symbol(),
		Decimals:    h.token.Decimals(),
		TotalSupply: h.token.TotalSupply().String(),
		TxFeeRate:   h.token.TxFeeRate().String(),
		Paused:      h.token.Paused(),
	})
}

// GetBalance godoc
// @Summary Get account balance
// @Tags token
// @Produce json
// @Param address path string true "Account address"
// @Success 200 {object} responses.BalanceResponse
// @Failure 400 {object} ErrorResponse
// @Router /accounts/{address}/balance [get]
func (h *TokenHandler) GetBalance(c *gin.Context) {
	addr, err := helpers.ParseAddress(c.Param("address"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid address format", err)
		return
	}
	sendSuccess(c, http.StatusOK, responses.BalanceResponse{
		Address: addr.Hex(),
		Balance: h.token.BalanceOf(addr).String(),
	})
}

// GetAllowance godoc
// @Summary Get spender allowance
// @Tags token
// @Produce json
// @Param owner path string true "Owner address"
// @Param spender path string true "Spender address"
// @Success 200 {object} responses.AllowanceResponse
// @Failure 400 {object} ErrorResponse
// @Router /accounts/{owner}/allowances/{spender} [get]
func (h *TokenHandler) GetAllowance(c *gin.Context) {
	owner, err := helpers.ParseAddress(c.Param("owner"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid owner address", err)
		return
	}
	spender, err := helpers.ParseAddress(c.Param("spender"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid spender address", err)
		return
	}
	sendSuccess(c, http.StatusOK, responses.AllowanceResponse{
		Owner:     owner.Hex(),
		Spender:   spender.Hex(),
		Allowance: h.token.Allowance(owner, spender).String(),
	})
}

// GetNonce godoc
// @Summary Get next authorization nonce
// @Tags token
// @Produce json
// @Param address path string true "Account address"
// @Success 200 {object} responses.NonceResponse
// @Failure 400 {object} ErrorResponse
// @Router /accounts/{address}/nonce [get]
func (h *TokenHandler) GetNonce(c *gin.Context) {
	addr, err := helpers.ParseAddress(c.Param("address"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid address format", err)
		return
	}
	sendSuccess(c, http.StatusOK, responses.NonceResponse{
		Address: addr.Hex(),
		Nonce:   h.token.Nonce(addr).String(),
	})
}

// Transfer godoc
// @Summary Transfer tokens
// @Tags token
// @Accept json
// @Produce json
// @Param request body requests.TransferRequest true "Transfer"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /transfers [post]
func (h *TokenHandler) Transfer(c *gin.Context) {
	var req requests.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	caller, to, amount, err := parseTransferTriple(req.Caller, req.To, req.Amount)
	if err != nil {
		sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}
	if err := h.token.Transfer(caller, to, amount); err != nil {
		handleLedgerError(c, err)
		return
	}
	sendSuccessMessage(c, http.StatusOK, "transfer applied")
}

// TransferFrom godoc
// @Summary Transfer tokens using an allowance
// @Tags token
// @Accept json
// @Produce json
// @Param request body requests.TransferFromRequest true "TransferFrom"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /transfers/from [post]
func (h *TokenHandler) TransferFrom(c *gin.Context) {
	var req requests.TransferFromRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	caller, err := helpers.ParseAddress(req.Caller)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid caller address", err)
		return
	}
	from, to, amount, err := parseTransferTriple(req.From, req.To, req.Amount)
	if err != nil {
		sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}
	if err := h.token.TransferFrom(caller, from, to, amount); err != nil {
		handleLedgerError(c, err)
		return
	}
	sendSuccessMessage(c, http.StatusOK, "transfer applied")
}

// Approve godoc
// @Summary Set a spender allowance
// @Tags token
// @Accept json
// @Produce json
// @Param request body requests.ApproveRequest true "Approve"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /approvals [post]
func (h *TokenHandler) Approve(c *gin.Context) {
	var req requests.ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	caller, spender, amount, err := parseTransferTriple(req.Caller, req.Spender, req.Amount)
	if err != nil {
		sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}
	if err := h.token.Approve(caller, spender, amount); err != nil {
		handleLedgerError(c, err)
		return
	}
	sendSuccessMessage(c, http.StatusOK, "allowance set")
}

// Mint godoc
// @Summary Mint new supply
// @Tags issuance
// @Accept json
// @Produce json
// @Param request body requests.MintRequest true "Mint"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Router /mint [post]
func (h *TokenHandler) Mint(c *gin.Context) {
	var req requests.MintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	caller, to, amount, err := parseTransferTriple(req.Caller, req.To, req.Amount)
	if err != nil {
		sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}
	if err := h.token.Mint(caller, to, amount); err != nil {
		handleLedgerError(c, err)
		return
	}
	sendSuccessMessage(c, http.StatusOK, "minted")
}

// Burn godoc
// @Summary Burn supply from the caller's balance
// @Tags issuance
// @Accept json
// @Produce json
// @Param request body requests.BurnRequest true "Burn"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Router /burn [post]
func (h *TokenHandler) Burn(c *gin.Context) {
	var req requests.BurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	caller, err := helpers.ParseAddress(req.Caller)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid caller address", err)
		return
	}
	amount, err := helpers.ParseAmount(req.Amount)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid amount", err)
		return
	}
	if err := h.token.Burn(caller, amount); err != nil {
		handleLedgerError(c, err)
		return
	}
	sendSuccessMessage(c, http.StatusOK, "burned")
}

// GetMinterAllowance godoc
// @Summary Get an issuer's remaining minting allowance
// @Tags issuance
// @Produce json
// @Param address path string true "Issuer address"
// @Success 200 {object} responses.MinterAllowanceResponse
// @Failure 400 {object} ErrorResponse
// @Router /minters/{address}/allowance [get]
func (h *TokenHandler) GetMinterAllowance(c *gin.Context) {
	addr, err := helpers.ParseAddress(c.Param("address"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid address format", err)
		return
	}
	sendSuccess(c, http.StatusOK, responses.MinterAllowanceResponse{
		Minter:    addr.Hex(),
		Allowance: h.token.MinterAllowance(addr).String(),
	})
}

// parseTransferTriple parses the (address, address, amount) shape shared by
// several request bodies.
func parseTransferTriple(a, b, amount string) (addrA, addrB common.Address, value *big.Int, err error) {
	addrA, err = helpers.ParseAddress(a)
	if err != nil {
		return
	}
	addrB, err = helpers.ParseAddress(b)
	if err != nil {
		return
	}
	value, err = helpers.ParseAmount(amount)
	return
}
