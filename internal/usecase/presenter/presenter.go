package presenter

import (
	"marketbuyer/internal/domain"
	"marketbuyer/internal/usecase"
	"marketbuyer/internal/usecase/buyer"
	"marketbuyer/internal/usecase/ranking"
)

type Presenter interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)

	ShowSellers(sellers []domain.Seller)
	ShowListings(product domain.Product, strategy string, ls []ranking.Listing)
	ShowBestOffer(product domain.Product, offer buyer.Offer, ok bool)

	ShowResult(res buyer.Result)
	ShowComparison(product domain.Product, qty float64, snaps []usecase.Snap)
}
