package common

// ProductionEnvironment is the Environment value that disables
// development-only behaviour such as resetting demo tasks on start.
const ProductionEnvironment = "production"

// DefaultDemoEmailDomain is the domain used for generated demo accounts.
const DefaultDemoEmailDomain = "todoapp.com"
