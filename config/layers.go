package config

import "github.com/yohamta/donburi/ecs"

// Default is the ECS layer every entity is created on.
const Default = ecs.LayerDefault
