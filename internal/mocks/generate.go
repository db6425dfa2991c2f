package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/gamelog --output domain/gamelog --outpkg gamelogmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Inbox --dir ../domain/gamelog --output domain/gamelog --outpkg gamelogmock --filename inbox_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/player --output domain/player --outpkg playermock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/summary --output domain/summary --outpkg summarymock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Sink --dir ../domain/summary --output domain/summary --outpkg summarymock --filename sink_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/slate --output domain/slate --outpkg slatemock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Source --dir ../domain/dataset --output domain/dataset --outpkg datasetmock --filename source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Notifier --dir ../domain/notification --output domain/notification --outpkg notificationmock --filename notifier_mock.go
