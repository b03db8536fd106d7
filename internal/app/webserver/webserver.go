package webserver

import (
	"context"

	"marketbuyer/internal/app/marketsetup"
	"marketbuyer/internal/config"
	"marketbuyer/internal/transport/httpapi"
	"marketbuyer/internal/usecase/buyer"
)

func New(ctx context.Context, cfg config.Config) (*httpapi.Server, error) {
	// Инфраструктура: склад из JSON (+ стаканы бирж, если заданы товары)
	m, err := marketsetup.Build(ctx, cfg)
	if err != nil {
		return nil, err
	}
	// Use-case покупателя: один рынок на весь сервер, заявки по очереди
	svc := buyer.NewService(m)
	// Адаптер между httpapi и buyer.Service
	return httpapi.New(cfg.HTTPAddr, &httpapi.BuyerAdapter{Svc: svc, Market: m}, cfg.RequestTimeout), nil
}
