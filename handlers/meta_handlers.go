package handlers

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gin-gonic/gin"

	"github.com/eurum-fi/eurum/eip712"
	"github.com/eurum-fi/eurum/forwarder"
	"github.com/eurum-fi/eurum/helpers"
	"github.com/eurum-fi/eurum/ledger"
	"github.com/eurum-fi/eurum/types/api/requests"
)

// MetaHandler handles the signed-authorization entry points: permit,
// transfer-with-authorization and relayed forward requests.
type MetaHandler struct {
	token *ledger.Token
	relay *forwarder.Forwarder
}

// NewMetaHandler creates a handler bound to a token and its relay.
func NewMetaHandler(token *ledger.Token, relay *forwarder.Forwarder) *MetaHandler {
	return &MetaHandler{token: token, relay: relay}
}

// Permit godoc
// @Summary Apply a signed allowance grant
// @Tags meta
// @Accept json
// @Produce json
// @Param request body requests.PermitRequest true "Permit"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /meta/permit [post]
func (h *MetaHandler) Permit(c *gin.Context) {
	var req requests.PermitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	owner, spender, value, err := parseTransferTriple(req.Owner, req.Spender, req.Value)
	if err != nil {
		sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}
	nonce, err := helpers.ParseAmount(req.Nonce)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid nonce", err)
		return
	}
	deadline, err := helpers.ParseAmount(req.Deadline)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid deadline", err)
		return
	}
	sig, err := helpers.ParseSignature(req.Sig.R, req.Sig.S, req.Sig.V)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid signature encoding", err)
		return
	}
	if err := h.token.Permit(owner, spender, value, nonce, deadline, sig); err != nil {
		handleLedgerError(c, err)
		return
	}
	sendSuccessMessage(c, http.StatusOK, "permit applied")
}

// TransferWithAuthorization godoc
// @Summary Apply a signed transfer
// @Tags meta
// @Accept json
// @Produce json
// @Param request body requests.TransferWithAuthorizationRequest true "Authorization"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /meta/transfer-with-authorization [post]
func (h *MetaHandler) TransferWithAuthorization(c *gin.Context) {
	var req requests.TransferWithAuthorizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	owner, to, value, err := parseTransferTriple(req.Owner, req.To, req.Value)
	if err != nil {
		sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}
	nonce, err := helpers.ParseAmount(req.Nonce)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid nonce", err)
		return
	}
	deadline, err := helpers.ParseAmount(req.Deadline)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid deadline", err)
		return
	}
	sig, err := helpers.ParseSignature(req.Sig.R, req.Sig.S, req.Sig.V)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid signature encoding", err)
		return
	}
	if err := h.token.TransferWithAuthorization(owner, to, value, nonce, deadline, sig); err != nil {
		handleLedgerError(c, err)
		return
	}
	sendSuccessMessage(c, http.StatusOK, "authorized transfer applied")
}

// Execute godoc
// @Summary Relay a signed forward request
// @Tags meta
// @Accept json
// @Produce json
// @Param request body requests.ForwardExecuteRequest true "Forward request"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /meta/forward [post]
func (h *MetaHandler) Execute(c *gin.Context) {
	var req requests.ForwardExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	operator, err := helpers.ParseAddress(req.Operator)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid operator address", err)
		return
	}
	from, err := helpers.ParseAddress(req.From)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid from address", err)
		return
	}
	to, err := helpers.ParseAddress(req.To)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid to address", err)
		return
	}
	fwd := eip712.ForwardRequest{From: from, To: to}
	if req.Value != "" {
		if fwd.Value, err = helpers.ParseAmount(req.Value); err != nil {
			sendError(c, http.StatusBadRequest, "Invalid value", err)
			return
		}
	}
	if req.Gas != "" {
		if fwd.Gas, err = helpers.ParseAmount(req.Gas); err != nil {
			sendError(c, http.StatusBadRequest, "Invalid gas", err)
			return
		}
	}
	if fwd.Nonce, err = helpers.ParseAmount(req.Nonce); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid nonce", err)
		return
	}
	if fwd.Data, err = hexutil.Decode(req.Data); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid calldata encoding", err)
		return
	}
	separator, err := decodeHash(req.DomainSeparator)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid domain separator", err)
		return
	}
	typeHash, err := decodeHash(req.TypeHash)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid type hash", err)
		return
	}
	var suffixData []byte
	if req.SuffixData != "" {
		if suffixData, err = hexutil.Decode(req.SuffixData); err != nil {
			sendError(c, http.StatusBadRequest, "Invalid suffix data", err)
			return
		}
	}
	sig, err := hexutil.Decode(req.Signature)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid signature encoding", err)
		return
	}
	if err := h.relay.Execute(operator, fwd, separator, typeHash, suffixData, sig); err != nil {
		handleLedgerError(c, err)
		return
	}
	sendSuccessMessage(c, http.StatusOK, "forwarded transfer executed")
}

func decodeHash(s string) (common.Hash, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return common.Hash{}, err
	}
	if len(b) != common.HashLength {
		return common.Hash{}, hexutil.ErrSyntax
	}
	return common.BytesToHash(b), nil
}
