// Package server wires the ledger aggregate, its relay and the HTTP
// handlers together and registers every route.
package server

import (
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/eurum-fi/eurum/forwarder"
	"github.com/eurum-fi/eurum/handlers"
	"github.com/eurum-fi/eurum/ledger"
	"github.com/eurum-fi/eurum/middleware"
)

// Handler definitions
var (
	tokenHandler *handlers.TokenHandler
	roleHandler  *handlers.RoleHandler
	adminHandler *handlers.AdminHandler
	metaHandler  *handlers.MetaHandler

	token *ledger.Token
	relay *forwarder.Forwarder
)

// InitializeHandlers constructs the token, its relay and all handlers from
// the environment. Required variables: EURUM_OWNER_ADDRESS. Optional:
// EURUM_CHAIN_ID (default 1), EURUM_TOKEN_ADDRESS, EURUM_FORWARDER_ADDRESS.
func InitializeHandlers() error {
	ownerHex := os.Getenv("EURUM_OWNER_ADDRESS")
	if !common.IsHexAddress(ownerHex) {
		return fmt.Errorf("EURUM_OWNER_ADDRESS is missing or malformed")
	}

	chainID := big.NewInt(1)
	if v := os.Getenv("EURUM_CHAIN_ID"); v != "" {
		parsed, ok := new(big.Int).SetString(v, 10)
		if !ok {
			return fmt.Errorf("EURUM_CHAIN_ID is malformed: %q", v)
		}
		chainID = parsed
	}

	token = ledger.NewToken(ledger.Config{
		Name:     "EURM",
		Symbol:   "EURM",
		Decimals: 6,
		ChainID:  chainID,
		Address:  common.HexToAddress(os.Getenv("EURUM_TOKEN_ADDRESS")),
		Owner:    common.HexToAddress(ownerHex),
	})

	var err error
	relay, err = forwarder.New(token, common.HexToAddress(os.Getenv("EURUM_FORWARDER_ADDRESS")))
	if err != nil {
		return fmt.Errorf("failed to initialize forwarder: %w", err)
	}

	tokenHandler = handlers.NewTokenHandler(token)
	roleHandler = handlers.NewRoleHandler(token)
	adminHandler = handlers.NewAdminHandler(token)
	metaHandler = handlers.NewMetaHandler(token, relay)
	return nil
}

// InitializeRoutes registers middleware and every route on the engine.
func InitializeRoutes(r *gin.Engine) {
	r.Use(cors.Default())
	r.Use(middleware.CorrelationIDMiddleware())

	v1 := r.Group("/v1")
	{
		v1.GET("/token", tokenHandler.GetTokenInfo)
		v1.GET("/accounts/:address/balance", tokenHandler.GetBalance)
		v1.GET("/accounts/:address/nonce", tokenHandler.GetNonce)
		v1.GET("/accounts/:owner/allowances/:spender", tokenHandler.GetAllowance)

		v1.POST("/transfers", tokenHandler.Transfer)
		v1.POST("/transfers/from", tokenHandler.TransferFrom)
		v1.POST("/approvals", tokenHandler.Approve)

		v1.POST("/mint", tokenHandler.Mint)
		v1.POST("/burn", tokenHandler.Burn)
		v1.POST("/minters", roleHandler.AddMinter)
		v1.POST("/minters/remove", roleHandler.RemoveMinter)
		v1.POST("/minters/allowance", roleHandler.UpdateMintingAllowance)
		v1.GET("/minters/:address/allowance", tokenHandler.GetMinterAllowance)

		v1.POST("/roles/owner", roleHandler.SetOwner)
		v1.POST("/roles/administrator", roleHandler.SetAdministrator)
		v1.POST("/roles/master-issuer", roleHandler.SetMasterIssuer)
		v1.POST("/roles/grant", roleHandler.GrantRole)
		v1.POST("/roles/revoke", roleHandler.RevokeRole)
		v1.POST("/safety-switch", roleHandler.SafetySwitch)
		v1.GET("/safety-switch", roleHandler.GetOperating)

		v1.POST("/compliance/blacklist", adminHandler.Blacklist)
		v1.POST("/compliance/unblacklist", adminHandler.Unblacklist)
		v1.GET("/compliance/:address", adminHandler.GetAccountStatus)
		v1.POST("/compliance/pause", adminHandler.Pause)
		v1.POST("/compliance/unpause", adminHandler.Unpause)
		v1.POST("/compliance/force-transfer", adminHandler.ForceTransfer)

		v1.POST("/fees/faucet", adminHandler.SetFeeFaucet)
		v1.POST("/fees/rate", adminHandler.SetTxFeeRate)
		v1.POST("/fees/gasless-basefee", adminHandler.SetGaslessBasefee)
		v1.POST("/forwarders/trusted", adminHandler.SetTrustedForwarder)

		v1.POST("/meta/permit", metaHandler.Permit)
		v1.POST("/meta/transfer-with-authorization", metaHandler.TransferWithAuthorization)
		v1.POST("/meta/forward", metaHandler.Execute)
	}
}
