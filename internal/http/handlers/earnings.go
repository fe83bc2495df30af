package handlers

import (
	"net/http"

	"pawbackend/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/earnings
func GetEarnings(c *gin.Context) {
	rc := requestContext(c)
	list, err := withdrawalService(c).History(rc.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"earnings": list})
}

// GET /api/earnings/balance
func GetEarningsBalance(c *gin.Context) {
	rc := requestContext(c)
	balance, err := withdrawalService(c).AvailableBalance(rc.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"balance":       utils.FormatMoney(balance),
		"balance_cents": balance,
	})
}

type withdrawalRequest struct {
	Amount string `json:"amount"`
}

// POST /api/withdrawals
func RequestWithdrawal(c *gin.Context) {
	var req withdrawalRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	amount, err := utils.ParseMoney(req.Amount)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "amount must be a money amount like 10.00", err)
		return
	}

	rc := requestContext(c)
	res, err := withdrawalService(c).RequestWithdrawal(rc.UserID, amount)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"entry":       res.Entry,
		"fee":         utils.FormatMoney(res.Fee),
		"net_payout":  utils.FormatMoney(res.NetPayout),
		"new_balance": utils.FormatMoney(res.NewBalance),
	})
}
