// dao/account_dao.go
package dao

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	lm_errors "github.com/Dev-Muhammad-Junaid/links-maker/errors"
	logger "github.com/Dev-Muhammad-Junaid/links-maker/logging"
	"github.com/Dev-Muhammad-Junaid/links-maker/model"
	helper_util "github.com/Dev-Muhammad-Junaid/links-maker/util/helper"
)

type AccountDAO struct {
	Driver neo4j.Driver
}

func NewAccountDAO(driver neo4j.Driver) *AccountDAO {
	dao := &AccountDAO{Driver: driver}
	// Ensure unique constraint on Account ID
	ctx := context.Background()
	if err := dao.EnsureUniqueConstraint(ctx); err != nil {
		logger.Fatal("Failed to ensure unique constraint for Account", zap.Error(err))
	}
	return dao
}

func (dao *AccountDAO) EnsureUniqueConstraint(ctx context.Context) error {
	logger.Info("Ensuring unique constraint on Account ID")
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        CREATE CONSTRAINT unique_account_id IF NOT EXISTS
        FOR (a:Account) REQUIRE a.id IS UNIQUE
        `
		_, err := transaction.Run(query, nil)
		return nil, err
	})

	if err != nil {
		logger.Error("Failed to ensure unique constraint on Account ID", zap.Error(err))
		return err
	}

	return nil
}

func (dao *AccountDAO) CreateAccount(ctx context.Context, account model.Account) (string, error) {
	start := time.Now()
	logger.Info("Creating new account", zap.String("label", account.Label), zap.Int("authIndex", account.AuthIndex))
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	if account.ID == "" {
		account.ID = uuid.New().String()
	}

	result, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MERGE (a:Account {id: $id})
        ON CREATE SET a += $props
        ON MATCH SET a += $props
        RETURN a.id as id
        `

		params := map[string]interface{}{
			"id": account.ID,
			"props": map[string]interface{}{
				"label":     account.Label,
				"authIndex": account.AuthIndex,
				"email":     account.Email,
				"photoUrl":  account.PhotoURL,
				"createdAt": time.Now().Format(time.RFC3339),
				"updatedAt": time.Now().Format(time.RFC3339),
			},
		}

		result, err := transaction.Run(query, params)
		if err != nil {
			return nil, lm_errors.ErrDatabaseOperation
		}

		if result.Next() {
			return result.Record().Values[0], nil
		}

		return nil, lm_errors.ErrInternalServer
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to create account",
			zap.Error(err),
			zap.String("label", account.Label),
			zap.Duration("duration", duration))
		return "", err
	}

	accountID := fmt.Sprintf("%v", result)
	logger.Info("Account created successfully",
		zap.String("accountID", accountID),
		zap.Duration("duration", duration))

	return accountID, nil
}

func (dao *AccountDAO) UpdateAccount(ctx context.Context, account model.Account) (*model.Account, error) {
	start := time.Now()
	logger.Info("Updating account", zap.String("accountID", account.ID))

	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	updated, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (a:Account {id: $id})
        SET a.label = $label,
            a.authIndex = $authIndex,
            a.email = $email,
            a.photoUrl = $photoUrl,
            a.updatedAt = $updatedAt
        RETURN a
        `

		params := map[string]interface{}{
			"id":        account.ID,
			"label":     account.Label,
			"authIndex": account.AuthIndex,
			"email":     account.Email,
			"photoUrl":  account.PhotoURL,
			"updatedAt": time.Now().Format(time.RFC3339),
		}

		result, err := transaction.Run(query, params)
		if err != nil {
			return nil, lm_errors.ErrDatabaseOperation
		}

		if result.Next() {
			node := result.Record().Values[0].(neo4j.Node)
			return mapNodeToAccount(node)
		}

		return nil, lm_errors.ErrAccountNotFound
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to update account",
			zap.Error(err),
			zap.String("accountID", account.ID),
			zap.Duration("duration", duration))
		return nil, err
	}

	updatedAccount := updated.(*model.Account)
	logger.Info("Account updated successfully",
		zap.String("accountID", updatedAccount.ID),
		zap.Duration("duration", duration))

	return updatedAccount, nil
}

func (dao *AccountDAO) DeleteAccount(ctx context.Context, accountID string) error {
	logger.Info("Deleting account", zap.String("accountID", accountID))
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (a:Account {id: $id})
        WITH a, count(a) as found
        DETACH DELETE a
        RETURN found
        `
		result, err := transaction.Run(query, map[string]interface{}{"id": accountID})
		if err != nil {
			return nil, lm_errors.ErrDatabaseOperation
		}

		if result.Next() {
			return result.Record().Values[0], nil
		}

		return nil, lm_errors.ErrAccountNotFound
	})

	if err != nil {
		logger.Error("Failed to delete account", zap.Error(err), zap.String("accountID", accountID))
		return err
	}

	logger.Info("Account deleted successfully", zap.String("accountID", accountID))
	return nil
}

func (dao *AccountDAO) GetAccount(ctx context.Context, accountID string) (*model.Account, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `MATCH (a:Account {id: $id}) RETURN a`
		result, err := transaction.Run(query, map[string]interface{}{"id": accountID})
		if err != nil {
			return nil, lm_errors.ErrDatabaseOperation
		}

		if result.Next() {
			node := result.Record().Values[0].(neo4j.Node)
			return mapNodeToAccount(node)
		}

		return nil, lm_errors.ErrAccountNotFound
	})

	if err != nil {
		return nil, err
	}

	return result.(*model.Account), nil
}

// ListAccounts returns accounts ordered by auth index, the order UI surfaces
// render them in.
func (dao *AccountDAO) ListAccounts(ctx context.Context, limit int, offset int) ([]model.Account, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (a:Account)
        RETURN a
        ORDER BY a.authIndex
        SKIP $offset
        LIMIT $limit
        `
		result, err := transaction.Run(query, map[string]interface{}{
			"offset": offset,
			"limit":  limit,
		})
		if err != nil {
			return nil, lm_errors.ErrDatabaseOperation
		}

		var accounts []model.Account
		for result.Next() {
			node := result.Record().Values[0].(neo4j.Node)
			account, err := mapNodeToAccount(node)
			if err != nil {
				return nil, err
			}
			accounts = append(accounts, *account)
		}
		return accounts, nil
	})

	if err != nil {
		logger.Error("Failed to list accounts", zap.Error(err))
		return nil, err
	}

	return result.([]model.Account), nil
}

func mapNodeToAccount(node neo4j.Node) (*model.Account, error) {
	props := node.Props

	account := &model.Account{
		ID:    fmt.Sprintf("%v", props["id"]),
		Label: fmt.Sprintf("%v", props["label"]),
	}

	if idx, ok := props["authIndex"].(int64); ok {
		account.AuthIndex = int(idx)
	}
	if email, ok := props["email"].(string); ok {
		account.Email = email
	}
	if photo, ok := props["photoUrl"].(string); ok {
		account.PhotoURL = photo
	}
	if createdAt, err := helper_util.ParseNullableTime(props["createdAt"]); err == nil && createdAt != nil {
		account.CreatedAt = *createdAt
	}
	if updatedAt, err := helper_util.ParseNullableTime(props["updatedAt"]); err == nil && updatedAt != nil {
		account.UpdatedAt = *updatedAt
	}

	return account, nil
}
