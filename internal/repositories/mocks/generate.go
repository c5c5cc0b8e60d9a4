package mocks

//go:generate mockgen -source=../identity/identity.go -destination=mock_identity.go -package=mocks
//go:generate mockgen -source=../leaderboard/leaderboard.go -destination=mock_leaderboard.go -package=mocks -mock_names=Keeper=MockLeaderboardKeeper
//go:generate mockgen -source=../progress/progress.go -destination=mock_progress.go -package=mocks -mock_names=Keeper=MockProgressKeeper
