package models

import "time"

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

// DemoStoredFiles returns the files shown in "My Files" on a fresh start.
func DemoStoredFiles() []StoredFile {
	return []StoredFile{
		{ID: "1", Name: "Annual Report.pdf", SizeBytes: 4500000, DateAdded: day("2023-04-20"), Starred: true},
		{ID: "2", Name: "Team Photo.jpg", SizeBytes: 3200000, DateAdded: day("2023-04-18")},
		{ID: "3", Name: "Presentation.pptx", SizeBytes: 8100000, DateAdded: day("2023-04-15"), Starred: true},
		{ID: "4", Name: "Budget.xlsx", SizeBytes: 1800000, DateAdded: day("2023-04-10")},
	}
}

// DemoSharedFiles returns the files listed under "Shared" on a fresh start.
func DemoSharedFiles() []SharedFile {
	return []SharedFile{
		{ID: "s1", Name: "Project Proposal.pdf", SizeBytes: 2500000, Recipient: "team@example.com", DateShared: day("2023-04-15")},
		{ID: "s2", Name: "Marketing Materials.zip", SizeBytes: 15000000, Recipient: "marketing@example.com", DateShared: day("2023-04-10")},
	}
}
