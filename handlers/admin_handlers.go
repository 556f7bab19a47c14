package handlers

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/eurum-fi/eurum/helpers"
	"github.com/eurum-fi/eurum/ledger"
	"github.com/eurum-fi/eurum/types/api/requests"
	"github.com/eurum-fi/eurum/types/api/responses"
)

// AdminHandler handles compliance and fee configuration operations
type AdminHandler struct {
	token *ledger.Token
}

// NewAdminHandler creates a handler bound to a token instance
func NewAdminHandler(token *ledger.Token) *AdminHandler {
	return &AdminHandler{token: token}
}

// Blacklist godoc
// @Summary Blacklist an address
// @Tags compliance
// @Accept json
// @Produce json
// @Param request body requests.AddressRequest true "Target"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Router /compliance/blacklist [post]
func (h *AdminHandler) Blacklist(c *gin.Context) {
	h.addressAction(c, h.token.Blacklist, "address blacklisted")
}

// Unblacklist godoc
// @Summary Remove an address from the blacklist
// @Tags compliance
// @Accept json
// @Produce json
// @Param request body requests.AddressRequest true "Target"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Router /compliance/unblacklist [post]
func (h *AdminHandler) Unblacklist(c *gin.Context) {
	h.addressAction(c, h.token.Unblacklist, "address unblacklisted")
}

// GetAccountStatus godoc
// @Summary Get compliance status of an address
// @Tags compliance
// @Produce json
// @Param address path string true "Account address"
// @Success 200 {object} responses.AccountStatusResponse
// @Failure 400 {object} ErrorResponse
// @Router /compliance/{address} [get]
func (h *AdminHandler) GetAccountStatus(c *gin.Context) {
	addr, err := helpers.ParseAddress(c.Param("address"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid address format", err)
		return
	}
	sendSuccess(c, http.StatusOK, responses.AccountStatusResponse{
		Address:     addr.Hex(),
		Blacklisted: h.token.IsBlacklisted(addr),
	})
}

// Pause godoc
// @Summary Pause all balance-mutating operations
// @Tags compliance
// @Accept json
// @Produce json
// @Param request body requests.CallerRequest true "Caller"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Router /compliance/pause [post]
func (h *AdminHandler) Pause(c *gin.Context) {
	h.callerAction(c, h.token.Pause, "paused")
}

// Unpause godoc
// @Summary Lift the global pause
// @Tags compliance
// @Accept json
// @Produce json
// @Param request body requests.CallerRequest true "Caller"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Router /compliance/unpause [post]
func (h *AdminHandler) Unpause(c *gin.Context) {
	h.callerAction(c, h.token.Unpause, "unpaused")
}

// ForceTransfer godoc
// @Summary Administrative remediation transfer
// @Tags compliance
// @Accept json
// @Produce json
// @Param request body requests.ForceTransferRequest true "ForceTransfer"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Router /compliance/force-transfer [post]
func (h *AdminHandler) ForceTransfer(c *gin.Context) {
	var req requests.ForceTransferRequest
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
	if err := h.token.ForceTransfer(caller, from, to, amount); err != nil {
		handleLedgerError(c, err)
		return
	}
	sendSuccessMessage(c, http.StatusOK, "forced transfer applied")
}

// SetFeeFaucet godoc
// @Summary Set the fee faucet account
// @Tags fees
// @Accept json
// @Produce json
// @Param request body requests.FeeConfigRequest true "Fee config"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Router /fees/faucet [post]
func (h *AdminHandler) SetFeeFaucet(c *gin.Context) {
	var req requests.FeeConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	caller, err := helpers.ParseAddress(req.Caller)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid caller address", err)
		return
	}
	faucet, err := helpers.ParseAddress(req.Faucet)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid faucet address", err)
		return
	}
	if err := h.token.SetFeeFaucet(caller, faucet); err != nil {
		handleLedgerError(c, err)
		return
	}
	sendSuccessMessage(c, http.StatusOK, "fee faucet updated")
}

// SetTxFeeRate godoc
// @Summary Set the transfer fee rate (parts per 10000)
// @Tags fees
// @Accept json
// @Produce json
// @Param request body requests.FeeConfigRequest true "Fee config"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Router /fees/rate [post]
func (h *AdminHandler) SetTxFeeRate(c *gin.Context) {
	var req requests.FeeConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	caller, err := helpers.ParseAddress(req.Caller)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid caller address", err)
		return
	}
	rate, err := helpers.ParseAmount(req.Rate)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid rate", err)
		return
	}
	if err := h.token.SetTxFeeRate(caller, rate); err != nil {
		handleLedgerError(c, err)
		return
	}
	sendSuccessMessage(c, http.StatusOK, "fee rate updated")
}

// SetGaslessBasefee godoc
// @Summary Set the flat gasless base fee
// @Tags fees
// @Accept json
// @Produce json
// @Param request body requests.FeeConfigRequest true "Fee config"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Router /fees/gasless-basefee [post]
func (h *AdminHandler) SetGaslessBasefee(c *gin.Context) {
	var req requests.FeeConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	caller, err := helpers.ParseAddress(req.Caller)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid caller address", err)
		return
	}
	fee, err := helpers.ParseAmount(req.Fee)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid fee", err)
		return
	}
	if err := h.token.SetGaslessBasefee(caller, fee); err != nil {
		handleLedgerError(c, err)
		return
	}
	sendSuccessMessage(c, http.StatusOK, "gasless base fee updated")
}

// SetTrustedForwarder godoc
// @Summary Register a trusted forwarder
// @Tags fees
// @Accept json
// @Produce json
// @Param request body requests.AddressRequest true "Forwarder"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Router /forwarders/trusted [post]
func (h *AdminHandler) SetTrustedForwarder(c *gin.Context) {
	h.addressAction(c, h.token.SetTrustedForwarder, "trusted forwarder registered")
}

func (h *AdminHandler) addressAction(c *gin.Context, action func(caller, addr common.Address) error, message string) {
	var req requests.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	caller, err := helpers.ParseAddress(req.Caller)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid caller address", err)
		return
	}
	addr, err := helpers.ParseAddress(req.Address)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid target address", err)
		return
	}
	if err := action(caller, addr); err != nil {
		handleLedgerError(c, err)
		return
	}
	sendSuccessMessage(c, http.StatusOK, message)
}

func (h *AdminHandler) callerAction(c *gin.Context, action func(caller common.Address) error, message string) {
	var req requests.CallerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	caller, err := helpers.ParseAddress(req.Caller)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid caller address", err)
		return
	}
	if err := action(caller); err != nil {
		handleLedgerError(c, err)
		return
	}
	sendSuccessMessage(c, http.StatusOK, message)
}
