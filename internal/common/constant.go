package common

// DarkModeKey is the preference key under which the display theme flag is stored.
const DarkModeKey = "darkMode"

// ShareLink is the link handed out by the simulated "copy share link" action.
const ShareLink = "https://dropvault.example/share/abc123"
