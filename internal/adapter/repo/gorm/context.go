package gormrepo

import (
	"context"

	"gorm.io/gorm"
)

type txKeyType struct{}

var txKey = txKeyType{}

func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

func txFromCtx(ctx context.Context) *gorm.DB {
	tx, _ := ctx.Value(txKey).(*gorm.DB)
	return tx
}

func getDBFromCtx(ctx context.Context, base *gorm.DB) *gorm.DB {
	if tx := txFromCtx(ctx); tx != nil {
		return tx
	}
	return base.WithContext(ctx)
}
