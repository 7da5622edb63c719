package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name PageFetcher --dir ../usecase --output usecase --outpkg usecasemock --filename page_fetcher_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Importer --dir ../usecase --output usecase --outpkg usecasemock --filename importer_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name CatalogSource --dir ../usecase --output usecase --outpkg usecasemock --filename catalog_source_mock.go
