// ABOUTME: Built-in rules, audit findings and framework patterns served by the knowledge base
// ABOUTME: Rule ids align with the pattern ids emitted by the checks package where one exists

package knowledge

var categories = []string{
	"missing-signer-check",
	"unchecked-arithmetic",
	"unvalidated-pda",
	"insecure-cpi",
	"account-deserialization",
	"rent-exemption",
	"close-account",
	"type-cosplay",
	"reinitialization-attack",
	"owner-check",
}

var staticRules = []Rule{
	{
		ID: "missing-signer-check", Severity: "critical", PatternType: "missing-signer-check",
		Description:   "Instruction does not verify that the authority account has signed the transaction",
		DetectionHint: "Check for Signer<'info> constraint on authority accounts",
	},
	{
		ID: "unchecked-arithmetic", Severity: "high", PatternType: "unchecked-arithmetic",
		Description:   "Arithmetic operation may overflow or underflow without checked math",
		DetectionHint: "Look for +, -, * operators without checked_add, checked_sub",
	},
	{
		ID: "unvalidated-pda", Severity: "critical", PatternType: "unvalidated-pda",
		Description:   "PDA derivation uses attacker-controlled seeds without validation",
		DetectionHint: "Verify seeds constraints and bump validation in #[account]",
	},
	{
		ID: "insecure-cpi", Severity: "critical", PatternType: "insecure-cpi",
		Description:   "Cross-program invocation does not verify the target program ID",
		DetectionHint: "Ensure CPI calls use Program<'info, T> typed accounts",
	},
	{
		ID: "account-deserialization", Severity: "high", PatternType: "account-deserialization",
		Description:   "Account data deserialization does not verify discriminator or owner",
		DetectionHint: "Use Account<'info, T> instead of AccountInfo for typed deserialization",
	},
	{
		ID: "rent-exemption", Severity: "medium", PatternType: "rent-exemption",
		Description:   "Account may not be rent-exempt after initialization",
		DetectionHint: "Verify init constraint includes correct space calculation",
	},
	{
		ID: "close-account-drain", Severity: "high", PatternType: "close-account",
		Description:   "Close account instruction does not properly drain lamports and zero data",
		DetectionHint: "Check close = target constraint or manual data zeroing",
	},
	{
		ID: "type-cosplay", Severity: "critical", PatternType: "type-cosplay",
		Description:   "Account can be substituted with a different type due to missing discriminator",
		DetectionHint: "Ensure all accounts use Anchor discriminators via Account<> wrapper",
	},
	{
		ID: "reinitialization-attack", Severity: "critical", PatternType: "reinitialization-attack",
		Description:   "Account can be re-initialized by calling init instruction multiple times",
		DetectionHint: "Use init_if_needed with care or add is_initialized flag checks",
	},
	{
		ID: "owner-check", Severity: "high", PatternType: "owner-check",
		Description:   "Account owner is not validated, allowing cross-program account injection",
		DetectionHint: "Verify owner field matches expected program ID",
	},
}

var auditFindings = []AuditFinding{
	{
		Source: "OtterSec Audit DB", VulnerabilityClass: "Access Control", Severity: "critical",
		Description: "Admin functions callable by any signer due to missing authority validation",
		FixPattern:  "Add has_one = authority constraint to admin instruction accounts",
	},
	{
		Source: "Sec3 Auto-Audit", VulnerabilityClass: "Integer Overflow", Severity: "high",
		Description: "Token amount calculation overflows on large deposits",
		FixPattern:  "Replace arithmetic operators with checked_mul and checked_div",
	},
	{
		Source: "Neodyme Research", VulnerabilityClass: "PDA Validation", Severity: "critical",
		Description: "Vault PDA seeds include user-supplied string without length validation",
		FixPattern:  "Limit seed input length and use canonical bump in derivation",
	},
	{
		Source: "OtterSec Audit DB", VulnerabilityClass: "CPI Safety", Severity: "critical",
		Description: "Token program invocation uses unchecked AccountInfo",
		FixPattern:  "Use Program<'info, Token> and CpiContext for all CPI calls",
	},
	{
		Source: "Sec3 Auto-Audit", VulnerabilityClass: "State Management", Severity: "high",
		Description: "Protocol state account not validated in governance instruction",
		FixPattern:  "Add seeds and bump constraints with has_one for state references",
	},
	{
		Source: "Neodyme Research", VulnerabilityClass: "Reentrancy", Severity: "critical",
		Description: "State update occurs after CPI call allowing reentrancy via callback",
		FixPattern:  "Follow checks-effects-interactions pattern: update state before CPI",
	},
	{
		Source: "OtterSec Audit DB", VulnerabilityClass: "Close Account", Severity: "high",
		Description: "Account close does not zero data, leaving stale data readable",
		FixPattern:  "Zero all account data bytes after transferring lamports on close",
	},
	{
		Source: "Sec3 Auto-Audit", VulnerabilityClass: "Signer Verification", Severity: "critical",
		Description: "Multisig threshold check uses >= instead of > allowing bypass",
		FixPattern:  "Ensure threshold comparison matches intended quorum logic",
	},
}

var frameworkPatterns = []FrameworkPattern{
	{
		Framework: "anchor", PatternName: "account-initialization",
		Description: "Correct account initialization with space calculation and PDA seeds",
		ExampleCode: `#[account(init, payer = user, space = 8 + MyAccount::INIT_SPACE, seeds = [b"seed", user.key().as_ref()], bump)]`,
	},
	{
		Framework: "anchor", PatternName: "pda-derivation",
		Description: "Deterministic PDA derivation with canonical bump storage",
		ExampleCode: `let (pda, bump) = Pubkey::find_program_address(&[b"vault", owner.as_ref()], program_id);`,
	},
	{
		Framework: "anchor", PatternName: "cpi-invocation",
		Description: "Safe cross-program invocation using CpiContext",
		ExampleCode: `let cpi_ctx = CpiContext::new(ctx.accounts.token_program.to_account_info(), Transfer { from, to, authority });`,
	},
	{
		Framework: "anchor", PatternName: "access-control",
		Description: "Authority validation using has_one and constraint macros",
		ExampleCode: `#[account(mut, has_one = authority, seeds = [b"config"], bump = config.bump)]`,
	},
	{
		Framework: "anchor", PatternName: "error-handling",
		Description: "Custom error definitions with require! macro for validation",
		ExampleCode: `require!(amount > 0, MyError::InvalidAmount);`,
	},
	{
		Framework: "anchor", PatternName: "close-account",
		Description: "Safe account closure with lamport drain and data zeroing",
		ExampleCode: `#[account(mut, close = destination, has_one = authority)]`,
	},
	{
		Framework: "anchor", PatternName: "event-emission",
		Description: "Structured event emission for off-chain indexing",
		ExampleCode: `emit!(TransferEvent { from: ctx.accounts.from.key(), to: ctx.accounts.to.key(), amount });`,
	},
	{
		Framework: "anchor", PatternName: "checked-math",
		Description: "Overflow-safe arithmetic using checked operations",
		ExampleCode: `let result = a.checked_add(b).ok_or(MyError::Overflow)?;`,
	},
	{
		Framework: "native", PatternName: "signer-check",
		Description: "Manual signer verification on a raw AccountInfo",
		ExampleCode: `if !authority.is_signer { return Err(ProgramError::MissingRequiredSignature); }`,
	},
	{
		Framework: "native", PatternName: "owner-check",
		Description: "Manual owner verification before deserializing account data",
		ExampleCode: `if account.owner != program_id { return Err(ProgramError::IncorrectProgramId); }`,
	},
}
