package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rewardly/cbs/internal/application/cashback"
	"github.com/rewardly/cbs/pkg/money"
)

type CashbackHandler struct {
	cashbackSvc cashback.ICashbackService
	logger      zerolog.Logger
}

func NewCashbackHandler(cashbackSvc cashback.ICashbackService, logger zerolog.Logger) *CashbackHandler {
	return &CashbackHandler{
		cashbackSvc: cashbackSvc,
		logger:      logger,
	}
}

type submitCashbackRequest struct {
	MerchantID            string `json:"merchant_id" binding:"required"`
	CampaignID            string `json:"campaign_id" binding:"required"`
	CustomerID            string `json:"customer_id" binding:"required"`
	OriginalTransactionID string `json:"original_transaction_id" binding:"required"`
	CashbackAmount        string `json:"cashback_amount" binding:"required"`
	CashbackPercentage    string `json:"cashback_percentage"`
}

func (h *CashbackHandler) Submit(c *gin.Context) {
	var req submitCashbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	amount, err := money.ParseAmount(req.CashbackAmount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	percentage := decimal.Zero
	if req.CashbackPercentage != "" {
		if percentage, err = decimal.NewFromString(req.CashbackPercentage); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cashback_percentage"})
			return
		}
	}

	tx, err := h.cashbackSvc.Submit(c.Request.Context(), cashback.SubmitRequest{
		MerchantID:            req.MerchantID,
		CampaignID:            req.CampaignID,
		CustomerID:            req.CustomerID,
		OriginalTransactionID: req.OriginalTransactionID,
		CashbackAmount:        amount,
		CashbackPercentage:    percentage,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tx)
}

func (h *CashbackHandler) Process(c *gin.Context) {
	tx, err := h.cashbackSvc.Process(c.Request.Context(), c.Param("id"), actorOrSystem(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

func (h *CashbackHandler) Retry(c *gin.Context) {
	tx, err := h.cashbackSvc.Retry(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

func (h *CashbackHandler) MarkDisputed(c *gin.Context) {
	tx, err := h.cashbackSvc.MarkDisputed(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

func (h *CashbackHandler) GetByID(c *gin.Context) {
	tx, err := h.cashbackSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

// GetByOriginal resolves the cashback transaction recorded for an
// originating purchase, if one exists.
func (h *CashbackHandler) GetByOriginal(c *gin.Context) {
	tx, err := h.cashbackSvc.GetByOriginal(c.Request.Context(), c.Param("merchant_id"), c.Param("original_transaction_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

func (h *CashbackHandler) ListByMerchant(c *gin.Context) {
	limit, offset := pagination(c)
	txs, err := h.cashbackSvc.ListByMerchant(c.Request.Context(), c.Param("merchant_id"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txs, "count": len(txs)})
}

func (h *CashbackHandler) ListByCustomer(c *gin.Context) {
	limit, offset := pagination(c)
	txs, err := h.cashbackSvc.ListByCustomer(c.Request.Context(), c.Param("customer_id"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txs, "count": len(txs)})
}

func (h *CashbackHandler) ProcessPendingBatch(c *gin.Context) {
	limit, _ := pagination(c)
	result, err := h.cashbackSvc.ProcessPendingBatch(c.Request.Context(), limit, actorOrSystem(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// actorOrSystem resolves the movement actor: the authenticated dashboard
// user when present, otherwise the service account used by API-key callers.
func actorOrSystem(c *gin.Context) string {
	if actor := c.GetString("actor_id"); actor != "" {
		return actor
	}
	return systemActorID
}

// systemActorID tags movements made by service-to-service callers and
// background jobs.
const systemActorID = "00000000-0000-0000-0000-000000000001"
