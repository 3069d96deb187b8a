package v1

import (
	"net/http"

	"github.com/kopilka/backend/internal/httputil"
	"github.com/kopilka/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReserveListResponse is the list of pending reserves for a credit card
// together with their total.
type ReserveListResponse struct {
	Data  []models.CreditCardReserve `json:"data"`
	Total decimal.Decimal            `json:"total" example:"300"` // Sum of the remaining amounts
	Error *string                    `json:"error"`
}

// ApplyReservesRequest selects the reserves to settle against a credit
// card statement.
type ApplyReservesRequest struct {
	ReserveIDs []uuid.UUID `json:"reserveIds" binding:"required"`
}

// RepayRequest books a repayment of credit card debt from another
// account.
type RepayRequest struct {
	FromAccountID uuid.UUID       `json:"fromAccountId" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
	ApplyReserves bool            `json:"applyReserves"` // Also settle pending reserves, oldest first
}

// RegisterAccountRoutes registers the routes for accounts.
func RegisterAccountRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", GetAccounts)
	r.POST("", CreateAccount)

	r.OPTIONS("/:id", OptionsAccountDetail)
	r.GET("/:id", GetAccount)
	r.PATCH("/:id", UpdateAccount)
	r.DELETE("/:id", DeleteAccount)

	r.OPTIONS("/:id/reserves", httputil.OptionsGet)
	r.GET("/:id/reserves", GetAccountReserves)

	r.OPTIONS("/:id/reserves/apply", httputil.OptionsPost)
	r.POST("/:id/reserves/apply", ApplyAccountReserves)

	r.OPTIONS("/:id/repay", httputil.OptionsPost)
	r.POST("/:id/repay", RepayAccount)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Accounts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/accounts/{id} [options]
func OptionsAccountDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Account{})
}

// @Summary		List accounts
// @Description	Returns a list of all accounts
// @Tags			Accounts
// @Success		200	{object}	ListResponse[models.Account]
// @Failure		500	{object}	ListResponse[models.Account]
// @Router			/v1/accounts [get]
func GetAccounts(c *gin.Context) {
	var accounts []models.Account
	err := models.DB.Order("name ASC").Find(&accounts).Error
	if err != nil {
		c.JSON(status(err), errorListResponse[models.Account](err))
		return
	}

	c.JSON(http.StatusOK, ListResponse[models.Account]{Data: accounts})
}

// @Summary		Create account
// @Description	Creates a new account
// @Tags			Accounts
// @Success		201		{object}	Response[models.Account]
// @Failure		400		{object}	Response[models.Account]
// @Failure		500		{object}	Response[models.Account]
// @Param			account	body		models.Account	true	"Account"
// @Router			/v1/accounts [post]
func CreateAccount(c *gin.Context) {
	createHandler[models.Account](c)
}

// @Summary		Get account
// @Description	Returns a specific account
// @Tags			Accounts
// @Success		200	{object}	Response[models.Account]
// @Failure		400	{object}	Response[models.Account]
// @Failure		404	{object}	Response[models.Account]
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/accounts/{id} [get]
func GetAccount(c *gin.Context) {
	getHandler[models.Account](c)
}

// AccountUpdate is the set of account fields that can be patched. The
// balance only moves through ledger operations, the currency and credit
// flag are fixed at creation.
type AccountUpdate struct {
	Name         *string    `json:"name"`
	Note         *string    `json:"note"`
	OnBudget     *bool      `json:"onBudget"`
	Archived     *bool      `json:"archived"`
	LinkedFundID *uuid.UUID `json:"linkedFundId"`
}

// @Summary		Update account
// @Description	Updates an account. Only values to be updated need to be specified, the balance cannot be patched.
// @Tags			Accounts
// @Success		200		{object}	Response[models.Account]
// @Failure		400		{object}	Response[models.Account]
// @Failure		404		{object}	Response[models.Account]
// @Param			id		path		string			true	"ID formatted as string"
// @Param			account	body		AccountUpdate	true	"Account"
// @Router			/v1/accounts/{id} [patch]
func UpdateAccount(c *gin.Context) {
	var account models.Account
	if !getResource(c, &account) {
		return
	}

	var data AccountUpdate
	if err := httputil.BindData(c, &data); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse[models.Account](err))
		return
	}

	updates := map[string]any{}
	if data.Name != nil {
		updates["name"] = *data.Name
	}
	if data.Note != nil {
		updates["note"] = *data.Note
	}
	if data.OnBudget != nil {
		updates["on_budget"] = *data.OnBudget
	}
	if data.Archived != nil {
		updates["archived"] = *data.Archived
	}
	if data.LinkedFundID != nil {
		if err := models.DB.First(&models.Fund{}, *data.LinkedFundID).Error; err != nil {
			c.JSON(status(err), errorResponse[models.Account](err))
			return
		}
		updates["linked_fund_id"] = *data.LinkedFundID
	}

	if err := models.DB.Model(&account).Updates(updates).Error; err != nil {
		c.JSON(status(err), errorResponse[models.Account](err))
		return
	}

	c.JSON(http.StatusOK, newResponse(account))
}

// @Summary		Delete account
// @Description	Deletes an account
// @Tags			Accounts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/accounts/{id} [delete]
func DeleteAccount(c *gin.Context) {
	deleteHandler[models.Account](c)
}

// @Summary		List pending reserves
// @Description	Returns the pending credit card reserves for an account, oldest first
// @Tags			Accounts
// @Success		200	{object}	ReserveListResponse
// @Failure		400	{object}	ReserveListResponse
// @Failure		404	{object}	ReserveListResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/accounts/{id}/reserves [get]
func GetAccountReserves(c *gin.Context) {
	var account models.Account
	if !getResource(c, &account) {
		return
	}

	reserves, total, err := account.PendingReserves(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReserveListResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, ReserveListResponse{Data: reserves, Total: total})
}

// @Summary		Apply reserves
// @Description	Settles the selected reserves against the credit card, reducing its debt
// @Tags			Accounts
// @Success		200		{object}	Response[models.ReserveApplication]
// @Failure		400		{object}	Response[models.ReserveApplication]
// @Failure		404		{object}	Response[models.ReserveApplication]
// @Failure		409		{object}	Response[models.ReserveApplication]
// @Param			id		path		string					true	"ID formatted as string"
// @Param			request	body		ApplyReservesRequest	true	"Reserves to apply"
// @Router			/v1/accounts/{id}/reserves/apply [post]
func ApplyAccountReserves(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse[models.ReserveApplication](err))
		return
	}

	var request ApplyReservesRequest
	if err := httputil.BindData(c, &request); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse[models.ReserveApplication](err))
		return
	}

	application, err := models.ApplyReserves(models.DB, uri.ID.UUID, request.ReserveIDs)
	if err != nil {
		c.JSON(status(err), errorResponse[models.ReserveApplication](err))
		return
	}

	invalidateSummaries()
	c.JSON(http.StatusOK, newResponse(application))
}

// @Summary		Repay credit card
// @Description	Transfers money onto the credit card and optionally settles pending reserves, oldest first
// @Tags			Accounts
// @Success		201		{object}	Response[models.Repayment]
// @Failure		400		{object}	Response[models.Repayment]
// @Failure		404		{object}	Response[models.Repayment]
// @Param			id		path		string			true	"ID formatted as string"
// @Param			request	body		RepayRequest	true	"Repayment"
// @Router			/v1/accounts/{id}/repay [post]
func RepayAccount(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse[models.Repayment](err))
		return
	}

	var request RepayRequest
	if err := httputil.BindData(c, &request); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse[models.Repayment](err))
		return
	}

	repayment, err := models.RepayCard(models.DB, uri.ID.UUID, request.FromAccountID, request.Amount, request.ApplyReserves)
	if err != nil {
		c.JSON(status(err), errorResponse[models.Repayment](err))
		return
	}

	invalidateSummaries()
	c.JSON(http.StatusCreated, newResponse(repayment))
}
