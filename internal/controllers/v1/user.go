package v1

import (
	"net/http"

	"github.com/fintrack-app/backend/internal/httputil"
	"github.com/fintrack-app/backend/internal/models"
	"github.com/gin-gonic/gin"
)

type UserEditable struct {
	Email       string `json:"email" example:"jo@example.com" binding:"required"` // Email, unique, stored lowercased
	DisplayName string `json:"displayName" example:"Jo" default:""`               // Name shown in settlement views
}

// model returns the database resource for the editable fields
func (editable UserEditable) model() models.User {
	return models.User{
		Email:       editable.Email,
		DisplayName: editable.DisplayName,
	}
}

type User struct {
	models.DefaultModel
	UserEditable
}

func newUser(model models.User) User {
	return User{
		DefaultModel: model.DefaultModel,
		UserEditable: UserEditable{
			Email:       model.Email,
			DisplayName: model.DisplayName,
		},
	}
}

type UserResponse struct {
	Data User `json:"data"`
}

type UserListResponse struct {
	Data []User `json:"data"`
}

func (co Controller) RegisterUserRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsUserList)
		r.GET("", co.GetUsers)
		r.POST("", co.CreateUser)
	}
	{
		r.OPTIONS("/:id", OptionsUserDetail)
		r.GET("/:id", co.GetUser)
		r.PATCH("/:id", co.UpdateUser)
		r.DELETE("/:id", co.DeleteUser)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Users
// @Success		204
// @Router			/v1/users [options]
func OptionsUserList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Users
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/users/{id} [options]
func OptionsUserDetail(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.First(&models.User{}, uri.ID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create user
// @Tags			Users
// @Produce		json
// @Success		201		{object}	UserResponse
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			user	body		UserEditable	true	"User"
// @Router			/v1/users [post]
func (co Controller) CreateUser(c *gin.Context) {
	var editable UserEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	user := editable.model()
	if err := models.DB.Create(&user).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, UserResponse{Data: newUser(user)})
}

// @Summary		List users
// @Tags			Users
// @Produce		json
// @Success		200	{object}	UserListResponse
// @Failure		500	{object}	httpError
// @Router			/v1/users [get]
func (co Controller) GetUsers(c *gin.Context) {
	var users []models.User
	if err := models.DB.Order("email ASC").Find(&users).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	data := make([]User, 0, len(users))
	for _, user := range users {
		data = append(data, newUser(user))
	}

	c.JSON(http.StatusOK, UserListResponse{Data: data})
}

// @Summary		Get user
// @Tags			Users
// @Produce		json
// @Success		200	{object}	UserResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/users/{id} [get]
func (co Controller) GetUser(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var user models.User
	if err := models.DB.First(&user, uri.ID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, UserResponse{Data: newUser(user)})
}

// @Summary		Update user
// @Tags			Users
// @Produce		json
// @Success		200		{object}	UserResponse
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Param			id		path		string			true	"ID formatted as string"
// @Param			user	body		UserEditable	true	"User"
// @Router			/v1/users/{id} [patch]
func (co Controller) UpdateUser(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var user models.User
	if err := models.DB.First(&user, uri.ID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	editable := UserEditable{
		Email:       user.Email,
		DisplayName: user.DisplayName,
	}
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	err := models.DB.Model(&user).Select("Email", "DisplayName").Updates(editable.model()).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, UserResponse{Data: newUser(user)})
}

// @Summary		Delete user
// @Tags			Users
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/users/{id} [delete]
func (co Controller) DeleteUser(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var user models.User
	if err := models.DB.First(&user, uri.ID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Delete(&user).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
