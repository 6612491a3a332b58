package rewards

// RequiredTasksPerMint is the number of completed tasks that earn one reward token
const RequiredTasksPerMint = 2

// Status is the mint eligibility of an account
type Status struct {
	Completed     int  `json:"completedTasks"`
	OwnedNFTs     int  `json:"ownedNfts"`
	EligibleTasks int  `json:"eligibleTasks"`
	CanMint       bool `json:"canMint"`
	// Progress counts the tasks towards the next mint, 0..RequiredTasksPerMint
	Progress int `json:"progress"`
	Required int `json:"required"`
}

// Eligibility computes the mint status from completed tasks and owned reward tokens.
// Every owned token has consumed RequiredTasksPerMint completed tasks.
func Eligibility(completed, ownedNFTs int) Status {
	eligible := completed - RequiredTasksPerMint*ownedNFTs

	progress := eligible
	if progress < 0 {
		progress = 0
	}
	if progress > RequiredTasksPerMint {
		progress = RequiredTasksPerMint
	}

	return Status{
		Completed:     completed,
		OwnedNFTs:     ownedNFTs,
		EligibleTasks: eligible,
		CanMint:       eligible >= RequiredTasksPerMint,
		Progress:      progress,
		Required:      RequiredTasksPerMint,
	}
}
