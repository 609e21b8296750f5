package pdvalidate

// elementSchemaJSON describes one stored diagram element.
// Unknown properties are allowed: stored documents carry editor state the renderer ignores.
const elementSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://playdiagram.dev/schemas/element.json",
  "type": "object",
  "required": ["type", "points"],
  "properties": {
    "id": { "type": ["string", "number", "null"] },
    "type": {
      "type": "string",
      "enum": ["player", "shape", "poly", "polyline", "text"]
    },
    "points": {
      "type": "array",
      "minItems": 1,
      "items": { "$ref": "#/$defs/point" }
    },
    "color": { "type": "string" },
    "groupId": { "type": ["string", "null"] },
    "label": { "type": "string" },
    "positionKey": { "type": ["string", "null"] },
    "shape": {
      "type": "string",
      "enum": ["circle", "square", "text-only"]
    },
    "variant": {
      "type": "string",
      "enum": ["filled", "outline"]
    },
    "fontSize": { "$ref": "#/$defs/size" },
    "shapeType": {
      "type": "string",
      "enum": ["star", "lock", "arrow-left", "arrow-right", "triangle-up", "triangle-down", "textbox"]
    },
    "text": { "type": "string" },
    "boxWidth": { "type": "number", "minimum": 0 },
    "boxHeight": { "type": "number", "minimum": 0 },
    "strokeWidth": { "$ref": "#/$defs/size" },
    "endType": {
      "type": "string",
      "enum": ["arrow", "t", "dot", "none"]
    },
    "style": { "$ref": "#/$defs/lineStyle" },
    "segmentStyles": {
      "type": "array",
      "items": {
        "anyOf": [
          { "$ref": "#/$defs/lineStyle" },
          { "type": "null" }
        ]
      }
    }
  },
  "allOf": [
    {
      "if": { "properties": { "type": { "enum": ["poly", "polyline"] } } },
      "then": { "properties": { "points": { "minItems": 2 } } },
      "else": { "properties": { "points": { "maxItems": 1 } } }
    },
    {
      "if": {
        "properties": { "type": { "const": "shape" } },
        "required": ["type"]
      },
      "then": { "required": ["shapeType"] }
    }
  ],
  "$defs": {
    "point": {
      "type": "object",
      "required": ["x", "y"],
      "properties": {
        "x": { "type": "number" },
        "y": { "type": "number" }
      }
    },
    "size": {
      "anyOf": [
        { "type": "number", "exclusiveMinimum": 0 },
        { "type": "string", "pattern": "^\\s*[0-9]*\\.?[0-9]+\\s*$" }
      ]
    },
    "lineStyle": {
      "type": "string",
      "enum": ["solid", "dashed", "zigzag"]
    }
  }
}`
