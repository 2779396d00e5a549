package repoargs

type RepositoryName string

const (
	UserRepoName       RepositoryName = "user"
	InvestmentRepoName RepositoryName = "investment"
)
