// controller/controllers.go
package controller

import "github.com/Dev-Muhammad-Junaid/links-maker/service"

type Controllers struct {
	Access  *AccessController
	Account *AccountController
}

func InitializeControllers(services *service.Services) *Controllers {
	return &Controllers{
		Access:  NewAccessController(services.Access),
		Account: NewAccountController(services.Account),
	}
}
