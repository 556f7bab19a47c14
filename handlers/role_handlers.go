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

// RoleHandler handles role registry and safety switch operations
type RoleHandler struct {
	token *ledger.Token
}

// NewRoleHandler creates a handler bound to a token instance
func NewRoleHandler(token *ledger.Token) *RoleHandler {
	return &RoleHandler{token: token}
}

// SetOwner godoc
// @Summary Transfer ownership
// @Tags roles
// @Accept json
// @Produce json
// @Param request body requests.RoleRequest true "New owner"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Router /roles/owner [post]
func (h *RoleHandler) SetOwner(c *gin.Context) {
	h.roleAction(c, h.token.SetOwner, "owner updated")
}

// SetAdministrator godoc
// @Summary Appoint the administrator
// @Tags roles
// @Accept json
// @Produce json
// @Param request body requests.RoleRequest true "New administrator"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Router /roles/administrator [post]
func (h *RoleHandler) SetAdministrator(c *gin.Context) {
	h.roleAction(c, h.token.SetAdministrator, "administrator updated")
}

// SetMasterIssuer godoc
// @Summary Appoint the master issuer
// @Tags roles
// @Accept json
// @Produce json
// @Param request body requests.RoleRequest true "New master issuer"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Router /roles/master-issuer [post]
func (h *RoleHandler) SetMasterIssuer(c *gin.Context) {
	h.roleAction(c, h.token.SetMasterIssuer, "master issuer updated")
}

// GrantRole godoc
// @Summary Grant a multi-member role (controller)
// @Tags roles
// @Accept json
// @Produce json
// @Param request body requests.RoleRequest true "Role grant"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Router /roles/grant [post]
func (h *RoleHandler) GrantRole(c *gin.Context) {
	h.roleSetAction(c, h.token.GrantRole, "role granted")
}

// RevokeRole godoc
// @Summary Revoke a multi-member role (controller)
// @Tags roles
// @Accept json
// @Produce json
// @Param request body requests.RoleRequest true "Role revocation"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Router /roles/revoke [post]
func (h *RoleHandler) RevokeRole(c *gin.Context) {
	h.roleSetAction(c, h.token.RevokeRole, "role revoked")
}

// AddMinter godoc
// @Summary Register an issuer with a minting allowance
// @Tags issuance
// @Accept json
// @Produce json
// @Param request body requests.MinterRequest true "Minter"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Router /minters [post]
func (h *RoleHandler) AddMinter(c *gin.Context) {
	var req requests.MinterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	caller, minter, allowance, err := parseTransferTriple(req.Caller, req.Minter, req.Allowance)
	if err != nil {
		sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}
	if err := h.token.AddMinter(caller, minter, allowance); err != nil {
		handleLedgerError(c, err)
		return
	}
	sendSuccessMessage(c, http.StatusOK, "minter added")
}

// RemoveMinter godoc
// @Summary Revoke an issuer and zero its allowance
// @Tags issuance
// @Accept json
// @Produce json
// @Param request body requests.MinterRequest true "Minter"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Router /minters/remove [post]
func (h *RoleHandler) RemoveMinter(c *gin.Context) {
	var req requests.MinterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	caller, err := helpers.ParseAddress(req.Caller)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid caller address", err)
		return
	}
	minter, err := helpers.ParseAddress(req.Minter)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid minter address", err)
		return
	}
	if err := h.token.RemoveMinter(caller, minter); err != nil {
		handleLedgerError(c, err)
		return
	}
	sendSuccessMessage(c, http.StatusOK, "minter removed")
}

// UpdateMintingAllowance godoc
// @Summary Reset an issuer's minting allowance
// @Tags issuance
// @Accept json
// @Produce json
// @Param request body requests.MinterRequest true "Minter"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Router /minters/allowance [post]
func (h *RoleHandler) UpdateMintingAllowance(c *gin.Context) {
	var req requests.MinterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	caller, minter, allowance, err := parseTransferTriple(req.Caller, req.Minter, req.Allowance)
	if err != nil {
		sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}
	if err := h.token.UpdateMintingAllowance(caller, minter, allowance); err != nil {
		handleLedgerError(c, err)
		return
	}
	sendSuccessMessage(c, http.StatusOK, "minter allowance updated")
}

// SafetySwitch godoc
// @Summary Flip the safety switch
// @Tags roles
// @Accept json
// @Produce json
// @Param request body requests.CallerRequest true "Caller"
// @Success 200 {object} responses.OperatingResponse
// @Failure 403 {object} ErrorResponse
// @Router /safety-switch [post]
func (h *RoleHandler) SafetySwitch(c *gin.Context) {
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
	if err := h.token.SafetySwitch(caller); err != nil {
		handleLedgerError(c, err)
		return
	}
	operating, lockedBy := h.token.IsOperating()
	sendSuccess(c, http.StatusOK, responses.OperatingResponse{
		Operating: operating,
		LockedBy:  lockedBy.Hex(),
	})
}

// GetOperating godoc
// @Summary Get the safety switch state
// @Tags roles
// @Produce json
// @Success 200 {object} responses.OperatingResponse
// @Router /safety-switch [get]
func (h *RoleHandler) GetOperating(c *gin.Context) {
	operating, lockedBy := h.token.IsOperating()
	sendSuccess(c, http.StatusOK, responses.OperatingResponse{
		Operating: operating,
		LockedBy:  lockedBy.Hex(),
	})
}

func (h *RoleHandler) roleAction(c *gin.Context, action func(caller, addr common.Address) error, message string) {
	var req requests.RoleRequest
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

func (h *RoleHandler) roleSetAction(c *gin.Context, action func(caller common.Address, role ledger.Role, addr common.Address) error, message string) {
	var req requests.RoleRequest
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
	if err := action(caller, ledger.Role(req.Role), addr); err != nil {
		handleLedgerError(c, err)
		return
	}
	sendSuccessMessage(c, http.StatusOK, message)
}
