// service/services.go
package service

type Services struct {
	Account IAccountService
	Access  IAccessService
}
